package arith_test

import (
	"fmt"

	"github.com/zephyrtronium/arith"
)

func ExampleEvaluate() {
	for _, src := range []string{"2+3*4", "(2+3)*4", "-3^2", "7%3", "1/3", "5/0", "2++2", "(2"} {
		r, err := arith.Evaluate(src)
		if err != nil {
			fmt.Printf("%s: %v\n", src, err)
			continue
		}
		fmt.Printf("%s = %g\n", src, r)
	}

	// Output:
	// 2+3*4 = 14
	// (2+3)*4 = 20
	// -3^2 = 9
	// 7%3 = 1
	// 1/3 = 0.333333333333333
	// 5/0: 2: division by zero in "/"
	// 2++2: 3: unexpected token "+"
	// (2: 1: unbalanced parentheses "("
}

func ExampleParseString() {
	e, err := arith.ParseString("3+4*2/(1-5)^2^3")
	if err != nil {
		panic(err)
	}
	fmt.Println(e)
	r, err := arith.NewContext().Eval(e)
	if err != nil {
		panic(err)
	}
	fmt.Println(r.Text('g', 10))

	// Output:
	// (3+((4*2)/((1-5)^(2^3))))
	// 3.00012207
}

func ExampleTokenize() {
	toks, err := arith.Tokenize("-(1.5 % 2)")
	if err != nil {
		panic(err)
	}
	for _, tok := range toks {
		fmt.Println(tok)
	}

	// Output:
	// Operator:-@1
	// LeftParen:(@2
	// Number:1.5@3
	// Operator:%@7
	// Number:2@9
	// RightParen:)@10
}
