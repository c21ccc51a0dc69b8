package waveform_test

import (
	"fmt"

	"github.com/katalvlaran/wavechain/tendency"
	"github.com/katalvlaran/wavechain/waveform"
)

// ExampleWaveform_Values interpolates across the gap between two constants.
func ExampleWaveform_Values() {
	w, err := waveform.New("demo/gap", []tendency.Spec{
		{Type: "constant", Line: 1, Fields: map[string]any{"value": 3, "start": 0, "end": 2}},
		{Type: "constant", Line: 2, Fields: map[string]any{"value": 5, "start": 4, "end": 5}},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(w.Values([]float64{0, 2, 3, 4, 5, 6}))
	for _, a := range w.Annotations().Items() {
		fmt.Println(a)
	}
	// Output:
	// [3 3 4 5 5 0]
	// 2:0: warning: gap between 2 and 4
}
