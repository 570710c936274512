/*
Package http exposes the blueprint commands over HTTP.

Routes:

	GET  /         service info
	GET  /health   liveness
	GET  /hello    greeting
	GET  /guide    user guide lookup (?q=words)
	POST /stats    component counts of a blueprint (JSON)
	POST /render   blueprint image (image/png)

POST bodies may be JSON (see Request), a multipart form with the blueprint
uploaded as "file", or the raw blueprint as text/plain. The blueprint is
looked up in the same places a chat command would look: the explicit
blueprint field, then the arguments, then the attachment, then the message
being replied to.
*/
package http
