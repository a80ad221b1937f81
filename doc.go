// Package triagekit provides static triage of arbitrary files, producing a
// structured risk assessment without ever executing the input.
//
// A single analysis streams the file once for hashing, samples a bounded
// prefix for entropy, matches magic signatures, resolves a best-effort MIME
// type, extracts printable strings, walks box-structured containers for
// structural anomalies, and folds every finding into a weighted risk score
// with an ordered reason list.
//
// # Basic Usage
//
//	cfg := triagekit.DefaultConfig()
//	analyzer := triagekit.NewAnalyzer(cfg, metadata.DefaultRegistry())
//
//	report, err := analyzer.Analyze(ctx, "/evidence/sample.mp4")
//	if err != nil {
//	    log.Fatal(err) // only input errors are fatal
//	}
//
//	fmt.Println(report.RiskScore, report.RiskReasons)
//
// Every analysis is an independent synchronous invocation with no shared
// mutable state, so files may be triaged concurrently without coordination.
//
// # Degraded Results
//
// Once the input opens successfully a report is always produced. Metadata
// provider failures are recorded inline as {"error": ...} in that provider's
// slot, container parse anomalies become findings, and external tool
// timeouts are confined to the provider that requested them.
//
// # Configuration
//
// Components receive an immutable [Config] at construction. Configuration
// can be loaded from TRIAGEKIT_-prefixed environment variables:
//
//	cfg, err := triagekit.GetConfig()
//
// # Watch Mode
//
// [Watcher] triages files as they appear in a drop folder:
//
//	w, err := triagekit.NewWatcher(analyzer, "/incoming", "*.bin", logger)
//	err = w.Run(ctx, func(r *triagekit.Report, path string) { ... })
//
// The digests in a report (md5, sha1, sha256) are legacy identifiers kept
// for compatibility with existing evidence records; they make no
// cryptographic security claim.
package triagekit
