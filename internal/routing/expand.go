package routing

import "github.com/kinstaky/logicroute/internal/lex"

// expandVariables substitutes every reference to a previously defined
// variable with its own (recursively expanded) right-hand side, wrapped in
// parentheses so it binds as a single term regardless of surrounding
// operators. Grounded on config_parser.cpp's ReplaceVariables.
func expandVariables(tokens []lex.Token, variables []VariableInfo) []lex.Token {
	var result []lex.Token
	for _, tok := range tokens {
		if tok.Kind != lex.KindVariable || !IsVariable(tok.Text) {
			result = append(result, tok)
			continue
		}
		for _, v := range variables {
			if v.Name != tok.Text {
				continue
			}
			expanded := expandVariables(v.Tokens, variables)
			result = append(result, lex.Token{Kind: lex.KindLParen, Text: "(", Pos: tok.Pos, Len: 1})
			result = append(result, expanded...)
			result = append(result, lex.Token{Kind: lex.KindRParen, Text: ")", Pos: tok.Pos, Len: 1})
			break
		}
	}
	return result
}
