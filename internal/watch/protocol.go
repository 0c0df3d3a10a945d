package watch

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// detailsRequestID tags GetMovieDetails calls so their responses can be told
// apart from the notification stream.
const detailsRequestID = "kodisubs-getmoviedetails"

const (
	methodOnUpdate       = "VideoLibrary.OnUpdate"
	methodOnScanFinished = "VideoLibrary.OnScanFinished"
)

// envelope is the common shape of everything Kodi sends over the socket:
// notifications carry Method and Params, responses carry ID and Result.
type envelope struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
	ID     json.RawMessage `json:"id"`
	Result json.RawMessage `json:"result"`
}

func decodeEnvelope(payload []byte) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return envelope{}, fmt.Errorf("decode message: %w", err)
	}
	return env, nil
}

// movieAdded extracts the movie id from an OnUpdate notification. Only
// notifications carrying added=true for a movie item qualify; playcount and
// resume-point updates arrive on the same method without the flag.
func movieAdded(params json.RawMessage) (int64, bool) {
	var data struct {
		Data struct {
			Added bool `json:"added"`
			Item  struct {
				ID   int64  `json:"id"`
				Type string `json:"type"`
			} `json:"item"`
		} `json:"data"`
	}
	if err := json.Unmarshal(params, &data); err != nil {
		return 0, false
	}
	if !data.Data.Added || data.Data.Item.Type != "movie" || data.Data.Item.ID <= 0 {
		return 0, false
	}
	return data.Data.Item.ID, true
}

// detailsRequest builds the GetMovieDetails call asking for a movie's file
// path.
func detailsRequest(movieID int64) ([]byte, error) {
	request := map[string]any{
		"jsonrpc": "2.0",
		"id":      detailsRequestID,
		"method":  "VideoLibrary.GetMovieDetails",
		"params": map[string]any{
			"movieid":    movieID,
			"properties": []string{"file"},
		},
	}
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("encode details request: %w", err)
	}
	return payload, nil
}

// movieFile extracts the file path from a GetMovieDetails response. Reports
// false for responses to other calls and for notifications.
func movieFile(env envelope) (string, bool) {
	if !bytes.Equal(env.ID, []byte(`"`+detailsRequestID+`"`)) {
		return "", false
	}
	var result struct {
		MovieDetails struct {
			File string `json:"file"`
		} `json:"moviedetails"`
	}
	if err := json.Unmarshal(env.Result, &result); err != nil {
		return "", false
	}
	if result.MovieDetails.File == "" {
		return "", false
	}
	return result.MovieDetails.File, true
}
