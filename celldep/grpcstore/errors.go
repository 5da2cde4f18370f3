package grpcstore

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"xdao.co/nft/celldep"
)

func mapRPC(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.NotFound:
		return celldep.ErrNotFound
	case codes.InvalidArgument:
		// Server uses InvalidArgument for malformed/undefined CIDs.
		return celldep.ErrInvalidCID
	case codes.DataLoss:
		// Server uses DataLoss when bytes do not match the requested key.
		return celldep.ErrHashMismatch
	default:
		// Best-effort: if the server sent a known store error message,
		// preserve it.
		switch st.Message() {
		case celldep.ErrNotFound.Error():
			return celldep.ErrNotFound
		case celldep.ErrInvalidCID.Error():
			return celldep.ErrInvalidCID
		case celldep.ErrHashMismatch.Error():
			return celldep.ErrHashMismatch
		default:
			return err
		}
	}
}
