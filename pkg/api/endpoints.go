package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hazyhaar/crmclean/pkg/clean"
	"github.com/hazyhaar/crmclean/pkg/kit"
	"github.com/hazyhaar/crmclean/pkg/record"
	"github.com/hazyhaar/crmclean/pkg/runlog"
	"github.com/hazyhaar/crmclean/pkg/schema"
)

// Service backs the HTTP and MCP transports with the cleaning pipeline.
// Runs is optional; when set, every API-triggered run lands in the run log.
type Service struct {
	SchemasDir string
	Runs       *runlog.DB
	Logger     *slog.Logger
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Shared request/response types used by both HTTP and MCP transports.

type cleanRowsReq struct {
	Kind schema.Kind
	Rows []map[string]string
}

type cleanRowsResp struct {
	Rows  []map[string]string `json:"rows"`
	Stats clean.Stats         `json:"stats"`
}

type schemasResp struct {
	Schemas []*schema.Schema `json:"schemas"`
}

const maxRowsPerRequest = 10000

func cleanRowsEndpoint(s *Service) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*cleanRowsReq)
		if len(req.Rows) == 0 {
			return nil, fmt.Errorf("rows array is empty")
		}
		if len(req.Rows) > maxRowsPerRequest {
			return nil, fmt.Errorf("too many rows (max %d, got %d)", maxRowsPerRequest, len(req.Rows))
		}

		sch, err := schema.LoadDir(s.SchemasDir, req.Kind)
		if err != nil {
			return nil, err
		}

		records := make([]record.Record, len(req.Rows))
		for i, row := range req.Rows {
			rec := make(record.Record, len(row))
			for field, value := range row {
				canonical, known := sch.Canonical(field)
				if !known || value == "" {
					continue
				}
				rec[canonical] = value
			}
			records[i] = rec
		}

		started := time.Now()
		survivors, stats, err := clean.New(sch, s.logger()).Rows(records)
		if err != nil {
			return nil, err
		}

		if s.Runs != nil {
			transport := kit.GetTransport(ctx)
			if err := s.Runs.Record(string(req.Kind), transport, transport, stats, started, time.Since(started)); err != nil {
				s.logger().Warn("run log write failed", "error", err)
			}
		}

		out := make([]map[string]string, len(survivors))
		for i, rec := range survivors {
			out[i] = map[string]string(rec)
		}
		return &cleanRowsResp{Rows: out, Stats: stats}, nil
	}
}

func listSchemasEndpoint(s *Service) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		schemas := make([]*schema.Schema, 0, len(schema.Kinds()))
		for _, kind := range schema.Kinds() {
			sch, err := schema.LoadDir(s.SchemasDir, kind)
			if err != nil {
				return nil, err
			}
			schemas = append(schemas, sch)
		}
		return &schemasResp{Schemas: schemas}, nil
	}
}
