package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/alphabet"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for dictionary requests
type Server struct {
	lex     dictionary.Lexicon
	cfg     config.ServerConfig
	def     int
	decoder *msgpack.Decoder
	encoder *msgpack.Encoder
	writer  *bufio.Writer
}

// NewServer creates a server using stdin/stdout for IPC
func NewServer(lex dictionary.Lexicon, cfg config.ServerConfig, threshold int) *Server {
	return NewServerWithIO(lex, cfg, threshold, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server reading requests from r and writing
// responses to w. threshold is used when a request carries no "t".
func NewServerWithIO(lex dictionary.Lexicon, cfg config.ServerConfig, threshold int, r io.Reader, w io.Writer) *Server {
	bw := bufio.NewWriter(w)
	return &Server{
		lex:     lex,
		cfg:     cfg,
		def:     threshold,
		decoder: msgpack.NewDecoder(bufio.NewReader(r)),
		encoder: msgpack.NewEncoder(bw),
		writer:  bw,
	}
}

// Start serves requests until the input is exhausted.
func (s *Server) Start() error {
	log.Debug("Starting Server.")

	if s.cfg.SendReady {
		if err := s.send(map[string]string{"status": "ready"}); err != nil {
			return err
		}
	}

	for {
		raw, err := s.decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("Input closed, stopping server")
				return nil
			}
			log.Errorf("Reading request: %v", err)
			return err
		}

		if err := s.handleRaw(raw); err != nil {
			log.Errorf("Writing response: %v", err)
			return err
		}
	}
}

// handleRaw decodes one msgpack value into a Request and answers it.
func (s *Server) handleRaw(raw msgpack.RawMessage) error {
	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		log.Debugf("Undecodable request: %v", err)
		return s.sendError("", fmt.Sprintf("invalid request: %v", err), CodeUndecodable)
	}
	return s.handleRequest(req)
}

func (s *Server) handleRequest(req Request) error {
	if req.Op == "" {
		return s.sendError(req.ID, "missing 'op' field", CodeBadRequest)
	}
	if err := utils.CheckWord(req.Word, s.cfg.MaxWordLen); err != nil {
		return s.sendError(req.ID, err.Error(), CodeBadRequest)
	}
	threshold := s.def
	if req.Threshold != nil {
		if *req.Threshold < 0 {
			return s.sendError(req.ID, "threshold must not be negative", CodeBadRequest)
		}
		threshold = *req.Threshold
	}

	log.Debug("Processing request", "id", req.ID, "op", req.Op, "word", req.Word)
	start := time.Now()
	resp := Response{ID: req.ID, OK: true, Distance: NoDistance}

	var err error
	switch req.Op {
	case OpInsert:
		err = s.lex.Insert(req.Word)
	case OpDelete:
		err = s.lex.Delete(req.Word)
	case OpContains:
		resp.Found = s.lex.Contains(req.Word)
	case OpSize, OpHealth:
	case OpClosest:
		resp.Words, err = s.lex.ClosestWithin(req.Word, threshold)
		resp.Found = len(resp.Words) > 0
	case OpSuggest:
		var sug dictionary.Suggestion
		sug, err = s.lex.Suggest(req.Word, threshold)
		resp.Words = sug.Close
		resp.Found = sug.Found
		resp.Best = sug.Best
		resp.Distance = distanceOrNone(sug.Distance)
	default:
		return s.sendError(req.ID, fmt.Sprintf("unknown op: %s", req.Op), CodeUnknownOp)
	}
	if err != nil {
		return s.sendError(req.ID, err.Error(), errorCode(err))
	}

	resp.Size = s.lex.Size()
	resp.TimeTaken = time.Since(start).Microseconds()
	return s.send(resp)
}

// errorCode maps dictionary errors to IPC codes. ErrInvalidNumber means a
// stored path is corrupt, which is not the client's fault.
func errorCode(err error) int {
	if errors.Is(err, alphabet.ErrInvalidCharacter) {
		return CodeBadRequest
	}
	return CodeInternalError
}

// send encodes one value and flushes it so the client sees it immediately.
func (s *Server) send(v any) error {
	if err := s.encoder.Encode(v); err != nil {
		return err
	}
	return s.writer.Flush()
}

func (s *Server) sendError(id, message string, code int) error {
	log.Debug("Request failed", "id", id, "code", code, "err", message)
	return s.send(ErrorResponse{ID: id, Error: message, Code: code})
}

// distanceOrNone maps trie.Infinity to NoDistance.
func distanceOrNone(d int) int {
	if d == trie.Infinity {
		return NoDistance
	}
	return d
}
