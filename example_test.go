package scicalc_test

import (
	"fmt"

	"github.com/zephyrtronium/scicalc"
)

func ExampleEngine() {
	e := scicalc.New()
	for _, src := range []string{"sin(30)+2^3", "Ans×2", "nCr(5,2)", "5/0", "2^3^2", "-2^2"} {
		v, err := e.Evaluate(src)
		if err != nil {
			fmt.Println(src, "=", scicalc.DisplayMessage(err))
			continue
		}
		fmt.Println(src, "=", e.Format(v))
	}
	fmt.Println("Ans =", e.Ans())

	// Output:
	// sin(30)+2^3 = 8.5
	// Ans×2 = 17
	// nCr(5,2) = 10
	// 5/0 = Math ERROR (div/0)
	// 2^3^2 = 512
	// -2^2 = 4
	// Ans = 4
}

func ExampleFormat() {
	fmt.Println(scicalc.Format(12345, scicalc.Engineering))
	fmt.Println(scicalc.Format(0.00123, scicalc.Scientific))
	fmt.Println(scicalc.Format(2.675, scicalc.Fixed(2)))
	fmt.Println(scicalc.Format(1e12, scicalc.Normal))

	// Output:
	// 12.345×10^3
	// 1.23×10^-3
	// 2.68
	// 1×10^12
}

func ExampleEngine_Secondary() {
	e := scicalc.New()
	r, _ := e.Evaluate("Pol(3,4)")
	theta, _ := e.Secondary()
	fmt.Println(e.Format(r), e.Format(theta))

	// Output:
	// 5 53.1301023542
}
