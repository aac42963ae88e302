package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
)

// Client calls the connect6.Connect6Game service with the JSON codec.
type Client struct {
	conn grpc.ClientConnInterface
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Register opens the event stream for playerID.
func (that *Client) Register(ctx context.Context, playerID string) (grpc.ServerStreamingClient[GameEvent], error) {
	stream, err := that.conn.NewStream(ctx, &serviceDesc.Streams[0], registerMethod, grpc.CallContentSubtype(codecName))
	if err != nil {
		return nil, fmt.Errorf("failed to open register stream: %w", err)
	}

	client := &grpc.GenericClientStream[PlayerInfo, GameEvent]{ClientStream: stream}
	if err = client.SendMsg(&PlayerInfo{PlayerID: playerID}); err != nil {
		return nil, fmt.Errorf("failed to send player info: %w", err)
	}

	if err = client.CloseSend(); err != nil {
		return nil, fmt.Errorf("failed to close send: %w", err)
	}

	return client, nil
}

func (that *Client) MakeMove(ctx context.Context, playerID string, x, y int) (*MoveResult, error) {
	return that.invoke(ctx, makeMoveMethod, &Move{PlayerID: playerID, X: int32(x), Y: int32(y)}) //nolint: gosec // board coordinates are small
}

func (that *Client) RequestRematch(ctx context.Context, playerID string) (*MoveResult, error) {
	return that.invoke(ctx, requestRematchMethod, &RematchRequest{PlayerID: playerID})
}

func (that *Client) Disconnect(ctx context.Context, playerID string) (*MoveResult, error) {
	return that.invoke(ctx, disconnectMethod, &DisconnectRequest{PlayerID: playerID})
}

func (that *Client) invoke(ctx context.Context, method string, in any) (*MoveResult, error) {
	out := new(MoveResult)
	if err := that.conn.Invoke(ctx, method, in, out, grpc.CallContentSubtype(codecName)); err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method, err)
	}

	return out, nil
}
