// Package loader reads a YAML waveform document into a configuration tree.
//
// Document shape:
//
//	globals:                 # free-form metadata, not interpreted
//	  machine: demo
//	core:                    # a key without '/' is a group
//	  core/te:               # a key with '/' is a waveform
//	    - {type: linear, from: 0, to: 1, duration: 2}
//	    - type: repeat
//	      duration: 4
//	      waveform:
//	        - {type: sine, amplitude: 0.1}
//	  core/ne: 3.5           # a bare number is a constant
//	derived/ratio: core/te / core/ne   # a string is a derived expression
//
// Every tendency keeps the line of its mapping, so annotations and errors
// point back into the document. Structural problems abort the load; numeric
// inconsistencies are collected as annotations.
package loader
