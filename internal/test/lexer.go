package test

import (
	"math/rand"
	"strconv"
	"strings"
)

var validTokens = []string{
	"int", "float", "bool", "x", "y", "total_2", "true", "false",
	"=", ";", "(", ")", "+", "-", "*", "/", "%", "!", "&&", "||",
	"0", "42", "3.5", "1000000", "0.25", "//comment\n", "\n",
}

func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	var toks []string
	for len(toks) < size {
		toks = append(toks, validTokens[rand.Intn(len(validTokens))])
	}

	return strings.Join(toks, sep)
}

// GetRandomProgram returns a well-typed program of size declarations.
func GetRandomProgram(size int) string {
	var prog strings.Builder
	for i := 0; i < size; i++ {
		name := "v" + strconv.Itoa(i)

		switch i % 3 {
		case 0:
			prog.WriteString("int " + name + " = " + strconv.Itoa(rand.Intn(1000)))
		case 1:
			prog.WriteString("float " + name + " = " + strconv.Itoa(rand.Intn(1000)) + ".5")
		default:
			prog.WriteString("bool " + name + " = true && !false")
		}

		prog.WriteString(";\n")
	}

	return prog.String()
}
