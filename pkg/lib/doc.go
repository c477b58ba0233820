// Package lib provides a Go SDK for the ddx due-diligence backend.
//
// This package allows applications to run company analyses, browse reports
// and generate PDF artifacts without shelling out to the ddx CLI binary. It
// is useful for scripting, automation, and building tools on top of the
// due-diligence backend.
//
// # Quick Start
//
// Create a client and run an analysis:
//
//	client, err := lib.New(ctx, lib.Config{
//	    BackendURL: "http://localhost:8000/api/v1",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	result, err := client.Analyze(ctx, "ACME Corp", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.ReportID)
//
// # Progress Reporting
//
// Analyses and PDF generation are long-running. Pass a progress callback to
// receive simulated progress updates while the backend works:
//
//	client.Analyze(ctx, "ACME Corp", &lib.AnalyzeOpts{
//	    OnProgress: func(p lib.Progress) {
//	        fmt.Printf("%3.0f%% %s\n", p.Fraction*100, p.StepLabel)
//	    },
//	})
//
// The reported fraction never reaches 1.0 until the backend actually
// replies, and a single terminal update with fraction 1.0 is delivered on
// success.
//
// # Retrying PDF Generation
//
// PDF generation can fail after the report data was already fetched. Calling
// [Client.GeneratePDF] again with the same report ID retries only the
// generation step, reusing the fetched report. When generation fails, the
// returned [PDFResult] carries the report's raw JSON as a fallback.
//
//	res, err := client.GeneratePDF(ctx, reportID, nil)
//	if err != nil {
//	    // res.Fallback holds the raw report, offer it or retry.
//	    res, err = client.GeneratePDF(ctx, reportID, nil)
//	}
//
// # Error Handling
//
// All methods return errors that can be inspected with [errors.Is]:
//
//   - [ErrNotFound]: Resource does not exist.
//   - [ErrNotValid]: Invalid input.
//   - [ErrSoftFailure]: The backend replied but the payload was unusable
//     (e.g. a PDF reply without a download reference).
//
// # History
//
// Finished operations are recorded locally. By default the history lives
// in memory and is lost when the client closes; set [Config].HistoryDBPath
// to persist it in a SQLite database shared with the ddx CLI.
//
// # Thread Safety
//
// A [Client] is safe for concurrent use from multiple goroutines, except
// for [Client.GeneratePDF] retries of the same report ID, which must be
// driven from a single goroutine.
package lib
