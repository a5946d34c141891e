// Package alma defines the public API surface of the Alma REST client:
// configuration, the Client interface and its per-resource sub-clients,
// record types for bibliographic records, holdings, items and analytics
// results, and the typed error taxonomy every failure is reported through.
//
// Construct a client with the almaclient package:
//
//	client, err := almaclient.New(&alma.Config{
//		APIKey: os.Getenv("ALMA_APIKEY"),
//		Region: alma.RegionNA,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	bib, err := client.Bibs().Get(ctx, "991234567890987", nil)
//	if alma.IsNotFound(err) {
//		// handle missing record
//	}
//
// All methods perform at most one HTTP request, except list operations,
// which follow Alma's limit/offset pagination until exhausted, and
// Analytics().GetReport, which polls a long-running report a bounded
// number of times.
package alma
