package depgraph_test

import (
	"fmt"

	"github.com/katalvlaran/wavechain/depgraph"
)

func ExampleGraph_Order() {
	g, err := depgraph.New(
		[]string{"derived/ratio", "core/ne", "core/te"},
		map[string][]string{"derived/ratio": {"core/te", "core/ne"}},
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(g.Order())
	// Output: [core/te core/ne derived/ratio]
}

func ExampleNew_cycle() {
	_, err := depgraph.New(
		[]string{"w/a", "w/b"},
		map[string][]string{"w/a": {"w/b"}, "w/b": {"w/a"}},
	)
	fmt.Println(err)
	// Output: depgraph: cycle detected: w/a -> w/b -> w/a
}
