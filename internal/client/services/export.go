package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/dessertcatalog/internal/client/client"
	"github.com/dmitrijs2005/dessertcatalog/internal/client/export"
	"github.com/dmitrijs2005/dessertcatalog/internal/client/sink"
	"github.com/dmitrijs2005/dessertcatalog/internal/common"
	"github.com/dmitrijs2005/dessertcatalog/internal/logging"
)

// ExportService renders the selected desserts to a PDF and stores it.
type ExportService interface {
	// Export builds the request from b and ids, asks the service for the
	// document and writes it to dst under name (catalog.pdf when empty).
	// Local validation failures never reach the network.
	Export(ctx context.Context, b *export.Builder, ids []int64, dst sink.Sink, name string) (string, error)
}

type exportService struct {
	client client.Client
	log    logging.Logger
}

func NewExportService(c client.Client, log logging.Logger) ExportService {
	return &exportService{client: c, log: log}
}

func (s *exportService) Export(ctx context.Context, b *export.Builder, ids []int64, dst sink.Sink, name string) (string, error) {
	req, err := b.Build(ids)
	if err != nil {
		return "", err
	}
	if name == "" {
		name = common.DefaultExportFileName
	}

	data, err := s.client.ExportPDF(ctx, req)
	if err != nil {
		return "", fmt.Errorf("export pdf: %w", err)
	}

	loc, err := dst.Write(ctx, name, data)
	if err != nil {
		return "", fmt.Errorf("save pdf: %w", err)
	}
	s.log.Info(ctx, "catalog exported", "desserts", len(req.DessertIDs), "template", req.Template, "bytes", len(data), "location", loc)
	return loc, nil
}
