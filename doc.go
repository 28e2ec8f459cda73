// Package jsonguard provides:
//
// - Compilation of JSON Schema documents extended with errorMessage annotations
// - Pluggable named formats registered on an explicit Compiler
// - Validation that reports every violation in one pass, with a stable error model via Issues
// - A typed Parser[T] that returns a T or a ValidationError with the aggregated messages
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Schemas are data (package jsonschema); formats live under formats/, the HTTP adapter under middleware/, and the CLI under cmd/jsonguard.
// - Library code never logs; errors are returned to the caller.
//
// Typical usage:
//
//	c := jsonguard.NewCompiler()
//	if err := formats.RegisterAll(c); err != nil { ... }
//	p, err := jsonguard.BuildParser[User](c, schema)
//	u, err := p.Parse(data)       // data is any JSON-shaped value
//	u, err = p.ParseBytes(body)   // or raw JSON
package jsonguard
