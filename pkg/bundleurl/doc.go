// Package bundleurl turns a bundler request URL into the build options the
// serving layer hands to the bundler.
//
// A request such as
//
//	http://localhost:8081/src/index.ios.bundle?dev=false&transform.engine=hermes
//
// resolves to a bundle request for <root>/src/index.js on platform "ios", with
// dev disabled, a companion source map at
//
//	http://localhost:8081/src/index.ios.map?dev=false&transform.engine=hermes
//
// and transform options {"engine": "hermes"}.
//
// # Pathname grammar
//
// The base name of the path is split on '.'. The first piece is the module
// name; the remaining pieces are segments:
//
//   - includeRequire, runModule and assets are legacy modifiers and are dropped.
//   - The last remaining segment selects the artifact kind (bundle, delta, map).
//   - A single segment naming a known platform becomes the path platform.
//   - Whatever is left stays part of the entry file name, which always ends in .js.
//
// # Query grammar
//
// platform and deltaBundleId are copied verbatim, the boolean flags dev, minify,
// excludeSource, inlineSourceMap and runModule accept only "true" and "false",
// and every other parameter is handed to a TransformOptionsParser.
//
// The package performs no I/O. A Resolver is immutable and safe for concurrent use.
package bundleurl
