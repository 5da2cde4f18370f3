package grpcstore

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"xdao.co/nft/celldep"
	"xdao.co/nft/celldep/memstore"
	"xdao.co/nft/datahash"
)

func newBufClient(t *testing.T, backing celldep.Store) *Client {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer()
	RegisterCodeCellServer(srv, &Server{Store: backing})

	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	dialer := func(ctx context.Context, s string) (net.Conn, error) { return lis.Dial() }
	cc, err := grpc.DialContext(
		context.Background(),
		"bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("DialContext: %v", err)
	}
	t.Cleanup(func() { _ = cc.Close() })

	return &Client{cc: cc, client: NewCodeCellClient(cc), Timeout: 2 * time.Second}
}

func TestGRPCStore_RoundTrip(t *testing.T) {
	client := newBufClient(t, memstore.New())

	payload := []byte("token logic module over the wire")
	id, err := client.Put(payload)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !id.Defined() {
		t.Fatalf("expected defined CID")
	}
	if !client.Has(id) {
		t.Fatalf("Has: expected true")
	}
	got, err := client.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("payload mismatch")
	}
}

func TestGRPCStore_NotFoundMapsToSentinel(t *testing.T) {
	client := newBufClient(t, memstore.New())

	id, err := datahash.CodeCID([]byte("never stored"))
	if err != nil {
		t.Fatalf("CodeCID: %v", err)
	}
	if _, err := client.Get(id); !celldep.IsNotFound(err) {
		t.Fatalf("got %v want ErrNotFound", err)
	}
	if client.Has(id) {
		t.Fatalf("Has: expected false")
	}
}
