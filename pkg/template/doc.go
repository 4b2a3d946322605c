// Package template loads pass definitions from YAML, JSON or JSONC documents
// and turns them into *pass.Request values.
//
// A definition mirrors pass.json closely: identifiers, appearance and
// relevance keys sit at the top level, fields are grouped by section under
// "fields", semantic tags are listed under "semantics" and translations live
// under "localizations" keyed by language. Image paths are resolved relative
// to the template file.
//
//	passTypeIdentifier: pass.com.example.boarding
//	style: boardingPass
//	transitType: air
//	fields:
//	  header:
//	    - key: gate
//	      label: Gate
//	      value: "23"
//	semantics:
//	  - name: airlineCode
//	    value: EX
package template
