package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hazyhaar/anunturi/pkg/article"
	"github.com/hazyhaar/anunturi/pkg/dict"
	"github.com/hazyhaar/anunturi/pkg/highlight"
	"github.com/hazyhaar/anunturi/pkg/kit"
)

var (
	errInvalid       = errors.New("invalid request")
	errNoExplanation = errors.New("no explanation for term")
)

// maxHighlightBytes bounds the text accepted by the highlight endpoint.
const maxHighlightBytes = 256 * 1024

// Service is what the endpoints need: term catalogs, the article store and the
// filter selectors.
type Service struct {
	Catalogs *dict.Registry
	Articles *article.Store
	Options  article.Options
	Workers  int
}

// Shared request/response types used by both HTTP and MCP transports.

type filterReq struct {
	Criteria article.Criteria
}

type filterResponse struct {
	Articles []*article.Article `json:"articles"`
	Total    int                `json:"total"`
	Criteria article.Criteria   `json:"criteria"`
	Active   bool               `json:"active"`
	Badges   []article.Badge    `json:"badges"`
}

type articleReq struct {
	ID      string
	Catalog string
}

type articleResponse struct {
	Article           *article.Article      `json:"article"`
	Catalog           string                `json:"catalog"`
	Title             []highlight.Annotated `json:"title"`
	OriginalContent   []highlight.Annotated `json:"original_content"`
	SimplifiedContent []highlight.Annotated `json:"simplified_content"`
}

type highlightReq struct {
	Text    string `json:"text"`
	Catalog string `json:"catalog,omitempty"`
}

type highlightResponse struct {
	Catalog  string                `json:"catalog"`
	Segments []highlight.Annotated `json:"segments"`
}

type explainReq struct {
	Term    string
	Catalog string
}

type explainResponse struct {
	Term        string `json:"term"`
	Catalog     string `json:"catalog"`
	Explanation string `json:"explanation"`
}

type termsReq struct {
	Catalog string
}

type termInfo struct {
	Term        string `json:"term"`
	Explanation string `json:"explanation,omitempty"`
}

type termsResponse struct {
	Catalog string     `json:"catalog"`
	Terms   []termInfo `json:"terms"`
}

type catalogsResponse struct {
	Catalogs []dict.CatalogInfo `json:"catalogs"`
}

type upsertReq struct {
	Article *article.Article
	AsNew   bool
}

type deleteReq struct {
	ID string
}

type deleteResponse struct {
	Deleted string `json:"deleted"`
}

// endpoints are built once and shared by the HTTP router and the MCP tools.
type endpoints struct {
	filter    kit.Endpoint
	article   kit.Endpoint
	highlight kit.Endpoint
	explain   kit.Endpoint
	terms     kit.Endpoint
	catalogs  kit.Endpoint
	options   kit.Endpoint
	upsert    kit.Endpoint
	remove    kit.Endpoint
}

func newEndpoints(svc *Service, logger *slog.Logger) *endpoints {
	wrap := func(name string, ep kit.Endpoint) kit.Endpoint {
		return kit.Chain(kit.RequestID(), kit.Logging(logger, name))(ep)
	}
	return &endpoints{
		filter:    wrap("filter_articles", filterEndpoint(svc)),
		article:   wrap("get_article", articleEndpoint(svc)),
		highlight: wrap("highlight_text", highlightEndpoint(svc)),
		explain:   wrap("explain_term", explainEndpoint(svc)),
		terms:     wrap("list_terms", termsEndpoint(svc)),
		catalogs:  wrap("list_catalogs", catalogsEndpoint(svc)),
		options:   wrap("filter_options", optionsEndpoint(svc)),
		upsert:    wrap("upsert_article", upsertEndpoint(svc)),
		remove:    wrap("delete_article", deleteEndpoint(svc)),
	}
}

func filterEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*filterReq)
		c := req.Criteria.Normalize()

		all, err := svc.Articles.List()
		if err != nil {
			return nil, err
		}
		matched := article.Filter(all, c)
		return filterResponse{
			Articles: matched,
			Total:    len(matched),
			Criteria: c,
			Active:   c.Active(),
			Badges:   svc.Options.Badges(c),
		}, nil
	}
}

func articleEndpoint(svc *Service) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*articleReq)
		cat, err := svc.Catalogs.Resolve(req.Catalog)
		if err != nil {
			return nil, err
		}
		a, err := svc.Articles.Get(req.ID)
		if err != nil {
			return nil, err
		}

		fields, err := highlight.SegmentAll(ctx, cat.Segmenter(),
			[]string{a.Title, a.OriginalContent, a.SimplifiedContent}, svc.Workers)
		if err != nil {
			return nil, err
		}
		return articleResponse{
			Article:           a,
			Catalog:           cat.ID(),
			Title:             highlight.Annotate(fields[0], cat),
			OriginalContent:   highlight.Annotate(fields[1], cat),
			SimplifiedContent: highlight.Annotate(fields[2], cat),
		}, nil
	}
}

func highlightEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*highlightReq)
		if len(req.Text) > maxHighlightBytes {
			return nil, fmt.Errorf("%w: text too long (max %d bytes, got %d)", errInvalid, maxHighlightBytes, len(req.Text))
		}
		cat, err := svc.Catalogs.Resolve(req.Catalog)
		if err != nil {
			return nil, err
		}
		return highlightResponse{
			Catalog:  cat.ID(),
			Segments: cat.Annotate(req.Text),
		}, nil
	}
}

func explainEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*explainReq)
		term := strings.TrimSpace(req.Term)
		if term == "" {
			return nil, fmt.Errorf("%w: missing term", errInvalid)
		}
		cat, err := svc.Catalogs.Resolve(req.Catalog)
		if err != nil {
			return nil, err
		}
		text, ok := cat.Explain(term)
		if !ok {
			return nil, fmt.Errorf("%w %q in catalog %s", errNoExplanation, term, cat.ID())
		}
		return explainResponse{Term: strings.ToLower(term), Catalog: cat.ID(), Explanation: text}, nil
	}
}

func termsEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*termsReq)
		cat, err := svc.Catalogs.Resolve(req.Catalog)
		if err != nil {
			return nil, err
		}
		terms := cat.Terms()
		infos := make([]termInfo, len(terms))
		for i, t := range terms {
			infos[i].Term = t
			infos[i].Explanation, _ = cat.Explain(t)
		}
		return termsResponse{Catalog: cat.ID(), Terms: infos}, nil
	}
}

func catalogsEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return catalogsResponse{Catalogs: svc.Catalogs.ListCatalogs()}, nil
	}
}

func optionsEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return svc.Options, nil
	}
}

func upsertEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*upsertReq)
		if req.Article == nil || strings.TrimSpace(req.Article.Title) == "" {
			return nil, fmt.Errorf("%w: article title is required", errInvalid)
		}
		if req.AsNew {
			return svc.Articles.Add(req.Article)
		}
		return svc.Articles.Upsert(req.Article)
	}
}

func deleteEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*deleteReq)
		if err := svc.Articles.Delete(req.ID); err != nil {
			return nil, err
		}
		return deleteResponse{Deleted: req.ID}, nil
	}
}
