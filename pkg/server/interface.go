/*
Package server implements msgpack IPC for the word dictionary.

Clients stream msgpack maps on stdin and receive one msgpack map per request
on stdout. Requests are processed one at a time, in arrival order, and every
response carries the time spent in microseconds.

# IPC

Each request carries an ID, an op and, depending on the op, a word and an
optional threshold:

	{"id": "req_001", "op": "insert", "w": "Τεστ"}
	{"id": "req_002", "op": "closest", "w": "τεσ", "t": 2}

Successful responses share one shape:

	{"id": "req_002", "ok": true, "f": true, "n": 1, "s": ["ΤΕΣΤ"], "b": "ΤΕΣΤ", "d": 1, "t": 38}

"n" is the dictionary size after the op. "d" is -1 when no word was reached.

Failures answer with the request ID, a message and a code:

	{"id": "req_003", "e": "encode \"ab!\": invalid character: '!'", "c": 400}

# Ops

	insert    store "w"
	delete    remove "w"
	contains  "f" reports membership of "w"
	size      "n" only
	closest   "s" holds the stored words within "t" (or the default threshold)
	suggest   like closest, plus "b" and "d" for the best match
	health    liveness check

# Codes

	400  bad request, unsupported character or word too long
	404  unknown op
	422  the value could not be decoded as a request
	500  a stored path failed to decode

A {"status": "ready"} map is written once the server starts reading, unless
server.send_ready is off.
*/
package server

// Request is a single IPC request.
type Request struct {
	ID        string `msgpack:"id"`
	Op        string `msgpack:"op"`
	Word      string `msgpack:"w,omitempty"`
	Threshold *int   `msgpack:"t,omitempty"`
}

// Response is the reply to a successful request.
type Response struct {
	ID        string   `msgpack:"id"`
	OK        bool     `msgpack:"ok"`
	Found     bool     `msgpack:"f"`
	Size      int      `msgpack:"n"`
	Words     []string `msgpack:"s,omitempty"`
	Best      string   `msgpack:"b,omitempty"`
	Distance  int      `msgpack:"d"`
	TimeTaken int64    `msgpack:"t"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

// Ops understood by the server.
const (
	OpInsert   = "insert"
	OpDelete   = "delete"
	OpContains = "contains"
	OpSize     = "size"
	OpClosest  = "closest"
	OpSuggest  = "suggest"
	OpHealth   = "health"
)

// Error codes.
const (
	CodeBadRequest    = 400
	CodeUnknownOp     = 404
	CodeUndecodable   = 422
	CodeInternalError = 500
)

// NoDistance is reported in Response.Distance when nothing was reached.
const NoDistance = -1
