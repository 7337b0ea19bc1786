package api

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

func dialFavoriteApp(t *testing.T, predictor Predictor) *FavoriteAppClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterFavoriteAppService(srv, NewFavoriteAppServer(predictor, testChoices(t), testLogger()))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewFavoriteAppClient(conn)
}

func TestGRPCPredict(t *testing.T) {
	client := dialFavoriteApp(t, testService([]float64{0.7, 0.2, 0.1, 0}))

	req, err := structpb.NewStruct(map[string]any{
		"Age":               25,
		"Gender":            "male",
		"Jobs":              "นักเรียน / นักศึกษา",
		"SocialMediaReason": []any{"การสื่อสาร – คุยกับคนอื่น", "ความบันเทิง – ผ่อนคลาย สนุก"},
	})
	require.NoError(t, err)

	resp, err := client.Predict(context.Background(), req)
	require.NoError(t, err)

	got := resp.AsMap()
	assert.Equal(t, "app:นักเรียน / นักศึกษา", got["predicted_label"])
	assert.NotEmpty(t, got["request_id"])

	echo := got["echo"].(map[string]any)
	assert.Equal(t, float64(25), echo["Age"])
	assert.Equal(t, "การสื่อสาร – คุยกับคนอื่น, ความบันเทิง – ผ่อนคลาย สนุก", echo["SocialMediaReason"])
	assert.Equal(t, "", echo["ActiveTimeClean"])

	top3 := got["top3"].([]any)
	require.Len(t, top3, 3)
	first := top3[0].(map[string]any)
	assert.Equal(t, "Facebook", first["class"])
	assert.Equal(t, 0.7, first["probability"])
}

func TestGRPCPredictUnavailableTop3(t *testing.T) {
	client := dialFavoriteApp(t, testService(nil))

	resp, err := client.Predict(context.Background(), &structpb.Struct{})
	require.NoError(t, err)

	got := resp.AsMap()
	assert.Contains(t, got, "top3")
	assert.Nil(t, got["top3"])
	assert.Equal(t, "app:", got["predicted_label"])
}

func TestGRPCPredictFailure(t *testing.T) {
	client := dialFavoriteApp(t, failingPredictor{})

	_, err := client.Predict(context.Background(), &structpb.Struct{})
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestGRPCListChoices(t *testing.T) {
	client := dialFavoriteApp(t, testService(nil))

	resp, err := client.ListChoices(context.Background())
	require.NoError(t, err)

	got := resp.AsMap()
	assert.Len(t, got["hours"], 3)
	assert.Len(t, got["social_media_reasons"], 5)
}
