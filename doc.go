// Package arith implements an arithmetic expression evaluator.
//
// The syntax is ordinary infix arithmetic on decimal literals: "2+3*4" is 14,
// "10-3-2" is 5, and "(2+3)*4" is 20. The operators are + - * / % and ^, with
// the usual precedence and left associativity except for ^, which is right
// associative. Unary minus binds tighter than any binary operator, so "-3^2"
// is 9.
//
// Expressions are evaluated with math/big floats at a configurable precision.
// Evaluate converts the result to float64 and rounds it to 15 decimal places
// so that inputs like "0.1+0.2" give the answer you would write by hand.
package arith
