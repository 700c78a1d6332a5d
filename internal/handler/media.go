package handler

import (
	"context"

	"github.com/pkordes/tripjournal/internal/auth"
	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/handler/gen"
)

// CreateMediaUpload handles POST /trips/{key}/media.
// The response carries a presigned URL; the file itself never passes
// through this server.
func (s *Server) CreateMediaUpload(ctx context.Context, req gen.CreateMediaUploadRequestObject) (gen.CreateMediaUploadResponseObject, error) {
	up, err := s.media.PresignUpload(ctx, auth.UserID(ctx), req.Key, req.Body.Filename, req.Body.ContentType)
	if err != nil {
		switch domain.CodeOf(err) {
		case domain.CodeInvalidArgument:
			return gen.CreateMediaUpload400JSONResponse(errorBody(err)), nil
		case domain.CodeUnauthenticated:
			return gen.CreateMediaUpload401JSONResponse(errorBody(err)), nil
		case domain.CodePermissionDenied:
			return gen.CreateMediaUpload403JSONResponse(errorBody(err)), nil
		case domain.CodeNotFound:
			return gen.CreateMediaUpload404JSONResponse(errorBody(err)), nil
		}
		return nil, err
	}
	return gen.CreateMediaUpload200JSONResponse{Key: up.Key, Url: up.URL, ExpiresAt: up.ExpiresAt}, nil
}
