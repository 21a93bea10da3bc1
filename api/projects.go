package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ProjectsService manages projects. Every call needs an Auth.
type ProjectsService struct{ c *Client }

type CreateProjectRequest struct {
	CompanyName  string `json:"company_name"`
	ContactEmail string `json:"contact_email"`
	Name         string `json:"name"`
}

type CreateProjectResponse struct {
	ID int64 `json:"id"`
}

type Project struct {
	ID                       int64  `json:"id"`
	Name                     string `json:"name"`
	CompanyName              string `json:"company_name"`
	ContactEmail             string `json:"contact_email"`
	CollectionLimitExpiresAt string `json:"collection_limit_expires_at"`
	CollectionMonthlyLimit   int    `json:"collection_monthly_limit"`
	CollectionRemaining      int    `json:"collection_remaining"`
	MintLimitExpiresAt       string `json:"mint_limit_expires_at"`
	MintMonthlyLimit         int    `json:"mint_monthly_limit"`
	MintRemaining            int    `json:"mint_remaining"`
}

type GetProjectsResponse struct {
	Result    []Project `json:"result"`
	Cursor    string    `json:"cursor"`
	Remaining int       `json:"remaining"`
}

func (s *ProjectsService) CreateProject(ctx context.Context, auth Auth, req CreateProjectRequest) (*CreateProjectResponse, error) {
	var resp CreateProjectResponse
	r := request{method: http.MethodPost, path: "/v1/projects", headers: auth.imxHeaders(), body: req}
	if err := s.c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *ProjectsService) GetProject(ctx context.Context, auth Auth, id string) (*Project, error) {
	var resp Project
	r := request{method: http.MethodGet, path: "/v1/projects/" + url.PathEscape(id), headers: auth.imxHeaders()}
	if err := s.c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *ProjectsService) GetProjects(ctx context.Context, auth Auth, params ListParams) (*GetProjectsResponse, error) {
	var resp GetProjectsResponse
	r := request{method: http.MethodGet, path: "/v1/projects", query: params.values(), headers: auth.imxHeaders()}
	if err := s.c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CollectionsService manages collections.
type CollectionsService struct{ c *Client }

type CreateCollectionRequest struct {
	ContractAddress    string `json:"contract_address"`
	Name               string `json:"name"`
	OwnerPublicKey     string `json:"owner_public_key"`
	ProjectID          int64  `json:"project_id"`
	Description        string `json:"description,omitempty"`
	IconURL            string `json:"icon_url,omitempty"`
	MetadataAPIURL     string `json:"metadata_api_url,omitempty"`
	CollectionImageURL string `json:"collection_image_url,omitempty"`
}

type UpdateCollectionRequest struct {
	Name               string `json:"name,omitempty"`
	Description        string `json:"description,omitempty"`
	IconURL            string `json:"icon_url,omitempty"`
	MetadataAPIURL     string `json:"metadata_api_url,omitempty"`
	CollectionImageURL string `json:"collection_image_url,omitempty"`
}

type Collection struct {
	Address             string `json:"address"`
	Name                string `json:"name"`
	Description         string `json:"description"`
	IconURL             string `json:"icon_url"`
	CollectionImageURL  string `json:"collection_image_url"`
	MetadataAPIURL      string `json:"metadata_api_url"`
	ProjectID           int64  `json:"project_id"`
	ProjectOwnerAddress string `json:"project_owner_address"`
}

func (s *CollectionsService) CreateCollection(ctx context.Context, auth Auth, req CreateCollectionRequest) (*Collection, error) {
	var resp Collection
	r := request{method: http.MethodPost, path: "/v1/collections", headers: auth.imxHeaders(), body: req}
	if err := s.c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *CollectionsService) UpdateCollection(ctx context.Context, auth Auth, address string, req UpdateCollectionRequest) (*Collection, error) {
	var resp Collection
	r := request{method: http.MethodPatch, path: "/v1/collections/" + url.PathEscape(address), headers: auth.imxHeaders(), body: req}
	if err := s.c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MetadataService manages collection metadata schemas.
type MetadataService struct{ c *Client }

type MetadataSchemaProperty struct {
	Name       string `json:"name"`
	Type       string `json:"type,omitempty"`
	Filterable bool   `json:"filterable,omitempty"`
}

type AddMetadataSchemaToCollectionRequest struct {
	ContractAddress string                   `json:"contract_address,omitempty"`
	Metadata        []MetadataSchemaProperty `json:"metadata"`
}

type MetadataSchemaRequest struct {
	Name       string `json:"name,omitempty"`
	Type       string `json:"type,omitempty"`
	Filterable bool   `json:"filterable,omitempty"`
}

func (s *MetadataService) AddMetadataSchemaToCollection(ctx context.Context, auth Auth, address string, req AddMetadataSchemaToCollectionRequest) (*SuccessResponse, error) {
	var resp SuccessResponse
	r := request{
		method:  http.MethodPost,
		path:    fmt.Sprintf("/v1/collections/%s/metadata-schema", url.PathEscape(address)),
		headers: auth.imxHeaders(),
		body:    req,
	}
	if err := s.c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *MetadataService) UpdateMetadataSchemaByName(ctx context.Context, auth Auth, address, name string, req MetadataSchemaRequest) (*SuccessResponse, error) {
	var resp SuccessResponse
	r := request{
		method:  http.MethodPatch,
		path:    fmt.Sprintf("/v1/collections/%s/metadata-schema/%s", url.PathEscape(address), url.PathEscape(name)),
		headers: auth.imxHeaders(),
		body:    req,
	}
	if err := s.c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MetadataRefreshesService requests and inspects metadata refreshes.
type MetadataRefreshesService struct{ c *Client }

type CreateMetadataRefreshRequest struct {
	CollectionAddress string   `json:"collection_address"`
	TokenIDs          []string `json:"token_ids"`
}

type CreateMetadataRefreshResponse struct {
	RefreshID string `json:"refresh_id"`
}

type MetadataRefreshSummary struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Pending   int `json:"pending"`
}

type MetadataRefresh struct {
	RefreshID         string                  `json:"refresh_id"`
	Status            string                  `json:"status"`
	CollectionAddress string                  `json:"collection_address"`
	StartedAt         string                  `json:"started_at"`
	CompletedAt       string                  `json:"completed_at,omitempty"`
	Summary           *MetadataRefreshSummary `json:"summary,omitempty"`
}

type ListMetadataRefreshesResponse struct {
	Result    []MetadataRefresh `json:"result"`
	Cursor    string            `json:"cursor"`
	Remaining int               `json:"remaining"`
}

type MetadataRefreshError struct {
	TokenID                  string `json:"token_id"`
	CollectionAddress        string `json:"collection_address"`
	ClientTokenMetadataURL   string `json:"client_token_metadata_url"`
	ClientResponseStatusCode int    `json:"client_response_status_code"`
	ClientResponseBody       string `json:"client_response_body"`
	ErrorCode                string `json:"error_code"`
	CreatedAt                string `json:"created_at"`
}

type MetadataRefreshErrorsResponse struct {
	Result    []MetadataRefreshError `json:"result"`
	Cursor    string                 `json:"cursor"`
	Remaining int                    `json:"remaining"`
}

// ListMetadataRefreshes lists refreshes, optionally for one collection.
func (s *MetadataRefreshesService) ListMetadataRefreshes(ctx context.Context, auth Auth, collectionAddress string, params ListParams) (*ListMetadataRefreshesResponse, error) {
	query := params.values()
	if collectionAddress != "" {
		query.Set("collection_address", collectionAddress)
	}

	var resp ListMetadataRefreshesResponse
	r := request{method: http.MethodGet, path: "/v1/metadata-refreshes", query: query, headers: auth.ethHeaders()}
	if err := s.c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *MetadataRefreshesService) GetMetadataRefreshResults(ctx context.Context, auth Auth, refreshID string) (*MetadataRefresh, error) {
	var resp MetadataRefresh
	r := request{method: http.MethodGet, path: "/v1/metadata-refreshes/" + url.PathEscape(refreshID), headers: auth.ethHeaders()}
	if err := s.c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *MetadataRefreshesService) GetMetadataRefreshErrors(ctx context.Context, auth Auth, refreshID string, params ListParams) (*MetadataRefreshErrorsResponse, error) {
	var resp MetadataRefreshErrorsResponse
	r := request{
		method:  http.MethodGet,
		path:    fmt.Sprintf("/v1/metadata-refreshes/%s/errors", url.PathEscape(refreshID)),
		query:   params.values(),
		headers: auth.ethHeaders(),
	}
	if err := s.c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *MetadataRefreshesService) CreateMetadataRefresh(ctx context.Context, auth Auth, req CreateMetadataRefreshRequest) (*CreateMetadataRefreshResponse, error) {
	var resp CreateMetadataRefreshResponse
	r := request{method: http.MethodPost, path: "/v1/metadata-refreshes", headers: auth.ethHeaders(), body: req}
	if err := s.c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
