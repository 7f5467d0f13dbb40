package exporter

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"evnex-cli/pkg/models"
)

// Source is the part of the Evnex client the collector reads from.
type Source interface {
	GetUserDetail(ctx context.Context) (*models.User, error)
	GetOrgChargePoints(ctx context.Context, orgID string) ([]models.ChargePoint, error)
	GetChargePointTransactions(ctx context.Context, chargePointID string) ([]models.Transaction, error)
}

var (
	upDesc = prometheus.NewDesc(
		"evnex_up", "Was the last scrape successful.", nil, nil,
	)
	scrapeDurationDesc = prometheus.NewDesc(
		"evnex_scrape_duration_seconds", "Time taken to scrape API.", nil, nil,
	)
	orgCountDesc = prometheus.NewDesc(
		"evnex_organisations_total", "Number of organisations the user belongs to.", nil, nil,
	)
	chargePointOnlineDesc = prometheus.NewDesc(
		"evnex_charge_point_online", "Network status (1=ONLINE).", []string{"id", "name", "serial", "org"}, nil,
	)
	chargePointCountDesc = prometheus.NewDesc(
		"evnex_charge_points_total", "Charge points grouped by network status.", []string{"status"}, nil,
	)
	chargingDesc = prometheus.NewDesc(
		"evnex_charge_point_charging", "Whether the most recent session is still running.", []string{"id", "name"}, nil,
	)
	lastSessionEnergyDesc = prometheus.NewDesc(
		"evnex_charge_point_last_session_energy_wh", "Energy delivered in the most recent session.", []string{"id", "name"}, nil,
	)
)

// Collector scrapes the Evnex API on every Prometheus collection. Offline
// charge points are never asked for transactions.
type Collector struct {
	Source  Source
	Timeout time.Duration
	Logger  *slog.Logger

	mu sync.Mutex
}

func NewCollector(src Source, timeout time.Duration, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{Source: src, Timeout: timeout, Logger: logger}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- upDesc
	ch <- scrapeDurationDesc
	ch <- orgCountDesc
	ch <- chargePointOnlineDesc
	ch <- chargePointCountDesc
	ch <- chargingDesc
	ch <- lastSessionEnergyDesc
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	success := 1.0
	if err := c.scrape(ctx, ch); err != nil {
		success = 0.0
		c.Logger.Error("scrape failed", "error", err)
	}

	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, success)
	ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue, time.Since(start).Seconds())
}

func (c *Collector) scrape(ctx context.Context, ch chan<- prometheus.Metric) error {
	// 1. User and organisations
	user, err := c.Source.GetUserDetail(ctx)
	if err != nil {
		return err
	}
	ch <- prometheus.MustNewConstMetric(orgCountDesc, prometheus.GaugeValue, float64(len(user.Organisations)))

	// 2. Charge points
	statusCounts := map[models.NetworkStatus]float64{
		models.NetworkStatusOnline:  0,
		models.NetworkStatusOffline: 0,
		models.NetworkStatusUnknown: 0,
	}
	var failed error
	for _, org := range user.Organisations {
		chargePoints, err := c.Source.GetOrgChargePoints(ctx, org.ID)
		if err != nil {
			c.Logger.Warn("listing charge points failed", "org", org.Name, "error", err)
			failed = err
			continue
		}

		for _, cp := range chargePoints {
			statusCounts[cp.NetworkStatus]++

			online := 0.0
			if cp.NetworkStatus == models.NetworkStatusOnline {
				online = 1.0
			}
			ch <- prometheus.MustNewConstMetric(chargePointOnlineDesc, prometheus.GaugeValue, online, cp.ID, cp.Name, cp.Serial, org.Name)

			// 3. Sessions, only for devices that can answer
			if cp.IsOffline() {
				continue
			}
			c.collectSessions(ctx, ch, cp)
		}
	}

	for st, cnt := range statusCounts {
		ch <- prometheus.MustNewConstMetric(chargePointCountDesc, prometheus.GaugeValue, cnt, string(st))
	}
	return failed
}

func (c *Collector) collectSessions(ctx context.Context, ch chan<- prometheus.Metric, cp models.ChargePoint) {
	txs, err := c.Source.GetChargePointTransactions(ctx, cp.ID)
	if err != nil {
		c.Logger.Warn("fetching transactions failed", "charge_point", cp.ID, "error", err)
		return
	}

	charging := 0.0
	if len(txs) > 0 && txs[0].Active() {
		charging = 1.0
	}
	ch <- prometheus.MustNewConstMetric(chargingDesc, prometheus.GaugeValue, charging, cp.ID, cp.Name)

	if len(txs) > 0 && txs[0].PowerUsage != nil {
		ch <- prometheus.MustNewConstMetric(lastSessionEnergyDesc, prometheus.GaugeValue, *txs[0].PowerUsage, cp.ID, cp.Name)
	}
}
