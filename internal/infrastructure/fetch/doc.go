/*
Package fetch downloads blueprint attachments.

Attachments are small text files holding a blueprint string. The fetcher
retries transient failures, enforces a size limit while streaming and
rejects anything that does not sniff as UTF-8 text:

	f := fetch.New(fetch.Options{MaxBytes: cfg.Attachment.MaxBytes}, logger)
	text, err := f.Fetch(ctx, "https://cdn.example.com/adder.txt")
	if fetch.IsClientError(err) {
		// bad attachment: report to the user
	}
*/
package fetch
