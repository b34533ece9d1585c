// Package config loads retain.json, the project configuration read by the
// retain command.
//
// # Configuration File Structure
//
//	{
//	  "name": "inbox",
//	  "server": {
//	    "host": "localhost",
//	    "port": 3000,
//	    "path": "/live",
//	    "readBufferSize": 4096,
//	    "writeBufferSize": 4096,
//	    "allowedOrigins": ["https://inbox.example.com"],
//	    "pingInterval": "30s",
//	    "maxSessions": 1000
//	  },
//	  "render": {
//	    "maxFollowUpPasses": 16
//	  },
//	  "telemetry": {
//	    "metrics": true,
//	    "metricsPath": "/metrics",
//	    "namespace": "retain",
//	    "tracerName": "retain"
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  },
//	  "export": {
//	    "bucket": "inbox-site",
//	    "prefix": "pages/",
//	    "region": "eu-west-1"
//	  }
//	}
//
// A missing file is not an error for Load: the caller gets New() with
// defaults applied. LoadFile on an explicit path does report E141.
package config
