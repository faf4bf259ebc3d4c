package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/railops/trackplan/core/metrics"
	"github.com/railops/trackplan/infra/logger"
)

// InfluxSink writes schedule runs to an InfluxDB instance using the official
// client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB
// endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns
// a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordScheduleRun writes each run as line protocol points: one
// schedule_run point plus one track_utilization point per track.
func (s *InfluxSink) RecordScheduleRun(runs []coremetrics.ScheduleRun) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, r := range runs {
		p := write.NewPointWithMeasurement("schedule_run").
			AddTag("scenario", r.Scenario).
			AddTag("run_id", r.RunID).
			AddField("trains", r.Trains).
			AddField("tracks", r.Tracks).
			AddField("total_delay", round3(r.TotalDelay)).
			AddField("weighted_delay", round3(r.WeightedDelay)).
			AddField("finished", r.Finished).
			SetTime(r.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
		for track := 0; track < r.Tracks; track++ {
			up := write.NewPointWithMeasurement("track_utilization").
				AddTag("scenario", r.Scenario).
				AddTag("run_id", r.RunID).
				AddTag("track", strconv.Itoa(track)).
				AddField("busy_minutes", round3(r.Utilization[track])).
				SetTime(r.Time)
			if err := s.writeAPI.WritePoint(ctx, up); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
