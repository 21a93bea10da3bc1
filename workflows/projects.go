package workflows

import (
	"context"

	"github.com/flash1-exchange/flash1-go"
	"github.com/flash1-exchange/flash1-go/api"
)

// The calls below are authorised by an Ethereum signature over the current unix timestamp.

// CreateProject creates a project owned by the signer.
func (w *Workflows) CreateProject(ctx context.Context, signer flash1.EthSigner, req api.CreateProjectRequest) (*api.CreateProjectResponse, error) {
	auth, err := w.authorise(ctx, signer)
	if err != nil {
		return nil, err
	}
	return w.api.Projects.CreateProject(ctx, auth, req)
}

// GetProject returns the signer's project id.
func (w *Workflows) GetProject(ctx context.Context, signer flash1.EthSigner, id string) (*api.Project, error) {
	auth, err := w.authorise(ctx, signer)
	if err != nil {
		return nil, err
	}
	return w.api.Projects.GetProject(ctx, auth, id)
}

// GetProjects lists the signer's projects.
func (w *Workflows) GetProjects(ctx context.Context, signer flash1.EthSigner, params api.ListParams) (*api.GetProjectsResponse, error) {
	auth, err := w.authorise(ctx, signer)
	if err != nil {
		return nil, err
	}
	return w.api.Projects.GetProjects(ctx, auth, params)
}

// CreateCollection creates a collection under one of the signer's projects.
func (w *Workflows) CreateCollection(ctx context.Context, signer flash1.EthSigner, req api.CreateCollectionRequest) (*api.Collection, error) {
	auth, err := w.authorise(ctx, signer)
	if err != nil {
		return nil, err
	}
	return w.api.Collections.CreateCollection(ctx, auth, req)
}

// UpdateCollection updates the collection at address.
func (w *Workflows) UpdateCollection(ctx context.Context, signer flash1.EthSigner, address string, req api.UpdateCollectionRequest) (*api.Collection, error) {
	auth, err := w.authorise(ctx, signer)
	if err != nil {
		return nil, err
	}
	return w.api.Collections.UpdateCollection(ctx, auth, address, req)
}

// AddMetadataSchemaToCollection adds metadata fields to the collection at address.
func (w *Workflows) AddMetadataSchemaToCollection(ctx context.Context, signer flash1.EthSigner, address string, req api.AddMetadataSchemaToCollectionRequest) (*api.SuccessResponse, error) {
	auth, err := w.authorise(ctx, signer)
	if err != nil {
		return nil, err
	}
	return w.api.Metadata.AddMetadataSchemaToCollection(ctx, auth, address, req)
}

// UpdateMetadataSchemaByName updates the metadata field called name.
func (w *Workflows) UpdateMetadataSchemaByName(ctx context.Context, signer flash1.EthSigner, address, name string, req api.MetadataSchemaRequest) (*api.SuccessResponse, error) {
	auth, err := w.authorise(ctx, signer)
	if err != nil {
		return nil, err
	}
	return w.api.Metadata.UpdateMetadataSchemaByName(ctx, auth, address, name, req)
}

// ListMetadataRefreshes lists the signer's metadata refreshes, optionally for one collection.
func (w *Workflows) ListMetadataRefreshes(ctx context.Context, signer flash1.EthSigner, collectionAddress string, params api.ListParams) (*api.ListMetadataRefreshesResponse, error) {
	auth, err := w.authorise(ctx, signer)
	if err != nil {
		return nil, err
	}
	return w.api.MetadataRefreshes.ListMetadataRefreshes(ctx, auth, collectionAddress, params)
}

// GetMetadataRefreshErrors lists the per-token errors of a metadata refresh.
func (w *Workflows) GetMetadataRefreshErrors(ctx context.Context, signer flash1.EthSigner, refreshID string, params api.ListParams) (*api.MetadataRefreshErrorsResponse, error) {
	auth, err := w.authorise(ctx, signer)
	if err != nil {
		return nil, err
	}
	return w.api.MetadataRefreshes.GetMetadataRefreshErrors(ctx, auth, refreshID, params)
}

// GetMetadataRefreshResults returns the status and summary of a metadata refresh.
func (w *Workflows) GetMetadataRefreshResults(ctx context.Context, signer flash1.EthSigner, refreshID string) (*api.MetadataRefresh, error) {
	auth, err := w.authorise(ctx, signer)
	if err != nil {
		return nil, err
	}
	return w.api.MetadataRefreshes.GetMetadataRefreshResults(ctx, auth, refreshID)
}

// CreateMetadataRefresh requests a metadata refresh for a set of tokens.
func (w *Workflows) CreateMetadataRefresh(ctx context.Context, signer flash1.EthSigner, req api.CreateMetadataRefreshRequest) (*api.CreateMetadataRefreshResponse, error) {
	auth, err := w.authorise(ctx, signer)
	if err != nil {
		return nil, err
	}
	return w.api.MetadataRefreshes.CreateMetadataRefresh(ctx, auth, req)
}
