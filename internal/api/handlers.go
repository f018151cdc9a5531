package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/youruser/ttsdeck/internal/cards"
	"github.com/youruser/ttsdeck/internal/deck"
	"github.com/youruser/ttsdeck/internal/decklist"
	imagepkg "github.com/youruser/ttsdeck/internal/image"
	"github.com/youruser/ttsdeck/internal/logging"
)

const (
	defaultQRSize = 400
	maxQRSize     = 2048
)

// Server serves the decklist converter over HTTP. The index is loaded once
// and only read afterwards.
type Server struct {
	index        *cards.Index
	logger       *zap.Logger
	cardBackPNG  []byte
	cardBackPath string
	appendOrder  bool
}

type ServerOptions struct {
	CardBackPath string
	Append       bool
}

func NewServer(ix *cards.Index, logger *zap.Logger, opts ServerOptions) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	back, err := imagepkg.CardBackPNG(opts.CardBackPath)
	if err != nil {
		return nil, err
	}
	return &Server{
		index:        ix,
		logger:       logger,
		cardBackPNG:  back,
		cardBackPath: opts.CardBackPath,
		appendOrder:  opts.Append,
	}, nil
}

type deckRequest struct {
	Decklist    string `json:"decklist"`
	DeckName    string `json:"deck_name"`
	Description string `json:"description"`
}

type setSummary struct {
	SetID   string `json:"setId,omitempty"`
	SetName string `json:"setName"`
	SetAbbr string `json:"setAbbr"`
	Cards   int    `json:"cards"`
}

func summarize(sets []*cards.SetEntry) []setSummary {
	out := make([]setSummary, 0, len(sets))
	for _, s := range sets {
		out = append(out, setSummary{
			SetID:   s.SetID,
			SetName: s.SetName,
			SetAbbr: s.SetAbbr,
			Cards:   len(s.CardsByID()),
		})
	}
	return out
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sets": s.index.Len()})
}

func (s *Server) listSets(c *gin.Context) {
	sets := summarize(s.index.Sets())
	c.JSON(http.StatusOK, gin.H{"count": len(sets), "sets": sets})
}

func (s *Server) filterSets(c *gin.Context) {
	var opt cards.FilterOptions
	if err := c.BindJSON(&opt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sets := summarize(cards.FilterSets(s.index, opt))
	c.JSON(http.StatusOK, gin.H{"count": len(sets), "sets": sets})
}

func (s *Server) bindDeck(c *gin.Context) (deckRequest, bool) {
	var req deckRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, false
	}
	if strings.TrimSpace(req.Decklist) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "decklist is empty"})
		return req, false
	}
	return req, true
}

func (s *Server) parse(text string) *decklist.Result {
	res := decklist.Parse(text, s.index)
	logging.ParseMessages(s.logger, res.Warnings, res.Errors)
	return res
}

func (s *Server) parseDeck(c *gin.Context) {
	req, ok := s.bindDeck(c)
	if !ok {
		return
	}
	res := s.parse(req.Decklist)
	c.JSON(http.StatusOK, gin.H{
		"groups":   res.Groups,
		"warnings": res.Warnings,
		"errors":   res.Errors,
		"cards":    res.CardCount(),
	})
}

// exportDeck answers with the save file as a download. Parse problems do
// not fail the request; their counts travel in headers.
func (s *Server) exportDeck(c *gin.Context) {
	req, ok := s.bindDeck(c)
	if !ok {
		return
	}
	res := s.parse(req.Decklist)

	save := deck.Assemble(res.Groups, deck.Options{
		Name:        req.DeckName,
		Description: req.Description,
		Append:      s.appendOrder,
	})
	b, err := deck.MarshalSaveFile(save)
	if err != nil {
		s.logger.Error("export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	name := save.ObjectStates[0].Nickname
	s.logger.Info("deck exported",
		zap.String("name", name),
		zap.Int("cards", len(save.ObjectStates[0].DeckIDs)),
		zap.Int("warnings", len(res.Warnings)),
		zap.Int("errors", len(res.Errors)))

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".json"))
	c.Header("X-Decklist-Warnings", strconv.Itoa(len(res.Warnings)))
	c.Header("X-Decklist-Errors", strconv.Itoa(len(res.Errors)))
	c.Data(http.StatusOK, "application/json", b)
}

func (s *Server) deckLabel(c *gin.Context) {
	req, ok := s.bindDeck(c)
	if !ok {
		return
	}
	res := s.parse(req.Decklist)
	text := deck.ExportDecklistText(res.Groups)
	if text == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no card resolved", "errors": res.Errors})
		return
	}

	b, err := imagepkg.DeckLabelPNG(text, s.cardBackPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

func (s *Server) cardBack(c *gin.Context) {
	c.Data(http.StatusOK, "image/png", s.cardBackPNG)
}

// qr endpoint returns a PNG of a QR for "text" query param
func (s *Server) qr(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	size := defaultQRSize
	if sizeStr := c.Query("size"); sizeStr != "" {
		if v, err := strconv.Atoi(sizeStr); err == nil && v > 0 && v <= maxQRSize {
			size = v
		}
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}
