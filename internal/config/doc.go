// Package config provides configuration parsing for didact tools.
//
// The configuration is stored in didact.json in the working directory.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "slice": "16ms",
//	  "yieldThreshold": "1ms",
//	  "logLevel": "info",
//	  "metrics": {
//	    "namespace": "didact"
//	  },
//	  "live": {
//	    "addr": ":7331"
//	  },
//	  "render": {
//	    "pretty": true,
//	    "indent": "  "
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Slice:", cfg.SliceDuration())
package config
