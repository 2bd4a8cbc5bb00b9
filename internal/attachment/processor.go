package attachment

import (
	"context"

	"go.uber.org/zap"

	"github.com/thywilljoshua/pdf-chat/internal/extract"
)

// Extractor is the part of extract.Pipeline a Processor needs.
type Extractor interface {
	Extract(ctx context.Context, src extract.SourceFile) (extract.Result, error)
}

type Processor struct {
	extractor Extractor
	store     *Store
	logger    *zap.Logger
}

func NewProcessor(e Extractor, store *Store, logger *zap.Logger) *Processor {
	if store == nil {
		store = NewStore()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{extractor: e, store: store, logger: logger}
}

func (p *Processor) Store() *Store { return p.store }

// Process validates src, extracts its text and registers a preview handle.
// Nothing is registered when validation or extraction fails.
func (p *Processor) Process(ctx context.Context, src extract.SourceFile) (*Attachment, error) {
	if err := extract.Validate(src); err != nil {
		p.logger.Info("rejected upload", zap.String("file", src.Name), zap.Int64("size", src.Size), zap.Error(err))
		return nil, err
	}
	res, err := p.extractor.Extract(ctx, src)
	if err != nil {
		p.logger.Info("extraction failed", zap.String("file", src.Name), zap.Error(err))
		return nil, err
	}
	att := &Attachment{
		ID:            NewID(),
		Name:          src.Name,
		Kind:          KindPDF,
		Size:          src.Size,
		Handle:        p.store.Put(extract.KindPDF, src.Data),
		ExtractedText: res.Text,
		PageCount:     res.PageCount,
	}
	p.logger.Info("attachment created", zap.String("id", att.ID), zap.String("file", att.Name), zap.Int("pages", att.PageCount))
	return att, nil
}

// Release frees the attachment's preview handle. It is safe to call more than
// once.
func (p *Processor) Release(att *Attachment) {
	if att == nil {
		return
	}
	if p.store.Revoke(att.Handle) {
		p.logger.Debug("released preview handle", zap.String("id", att.ID))
	}
}

// Preview returns the original PDF bytes and their media type while the
// handle is live.
func (p *Processor) Preview(att *Attachment) ([]byte, string, bool) {
	if att == nil {
		return nil, "", false
	}
	return p.store.Get(att.Handle)
}
