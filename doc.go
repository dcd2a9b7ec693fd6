// Package htmlsplice builds static pages from flat text data files.
//
// # Quick Start
//
// Create a builder and run the default targets:
//
//	b, err := htmlsplice.NewBuilder(htmlsplice.WithRoot("site"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	results, err := b.BuildAll(ctx, htmlsplice.DefaultTargets())
//	for _, r := range results {
//	    if r.Updated() {
//	        fmt.Println(r)
//	    }
//	}
//
// # Data Files
//
// A data file is a list of records separated by blank lines. A record
// whose first line starts with "<!--" is a comment and is ignored.
//
// Articles take a title line, one or more body lines and a date line:
//
//	New album
//	Recorded last winter.
//	Out in March.
//	01/02/2025
//
// Tour dates take five lines in a fixed order: date (DD/MM/YYYY), band,
// venue, address and status. The status decides the CSS class of the
// rendered paragraph: cancelled, past-date, confirmed or pending.
//
// # Injection
//
// Rendered records are placed into the target document at the first of:
//
//  1. the span between <!-- START_ID --> and <!-- END_ID -->
//  2. the target's placeholder comment, such as <!-- ARTICLES_CONTENT -->
//  3. the content of the element whose id attribute is the target's
//     container id
//
// The markers are always written back, so later builds take the first
// path. A document offering none of the three is left untouched.
//
// A document containing <!-- LAST_UPDATED --> also receives a localized
// timestamp, either inside <h2 id="last-updated"> or in front of the
// comment itself.
//
// # Configuration
//
// Use functional options to customize the builder:
//
//	b, err := htmlsplice.NewBuilder(
//	    htmlsplice.WithLocale("en-GB"),
//	    htmlsplice.WithTrustedInput(true),
//	    htmlsplice.WithLogger(logger),
//	)
//
// Text fields are HTML-escaped unless WithTrustedInput is set.
package htmlsplice
