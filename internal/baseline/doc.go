// Package baseline synthesizes a reference capability document when the
// caller has none.
//
// A resource directory holds division files (JSON) and an optional
// version.ini:
//
//	resources/
//	  version.ini          version = 6001
//	  core/defaults.json
//	  browsers/chrome.json
//
// Each division lists user agents with their properties and the child
// patterns derived from them:
//
//	{
//	  "division": "Chrome 1.0",
//	  "sortIndex": 10,
//	  "userAgents": [{
//	    "userAgent": "Chrome 1.0",
//	    "properties": {"Parent": "DefaultProperties", "Browser": "Chrome"},
//	    "children": [{"match": "Mozilla/5.0 (*) Chrome/1.0*", "properties": {"Platform": "Win10"}}]
//	  }]
//	}
//
// The pipeline is CreateCollection, Resolve (inheritance through Parent),
// Render (INI text in the format document.Parse reads) and, wrapping all
// three, Synthesizer.Synthesize which writes the result to a unique cache
// directory. Every failure is a *GenerationError.
package baseline
