// Package export renders a component tree to static HTML.
//
// Render mounts the tree on an in-memory document, runs every scheduled
// pass and task until the tree settles, and serialises the result. Tasks
// that resolve synchronously (loaders that already have their data) are
// reflected in the output; work that never settles is cut off.
//
// The HTML can be written to a file or uploaded to S3:
//
//	html, err := export.Render(demo.Page("Inbox"), export.Options{})
//	up := export.NewS3Uploader(export.NewS3Client(export.S3Config{Region: "eu-west-1"}), "site", "pages/")
//	err = up.Upload(ctx, "inbox.html", export.Document("Inbox", html))
package export
