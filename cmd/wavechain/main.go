// Command wavechain checks, samples and watches waveform documents.
//
//	wavechain check doc.yaml
//	wavechain sample doc.yaml core/te --from 0 --to 10 --points 101
//	wavechain graph doc.yaml
//	wavechain watch doc.yaml
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
