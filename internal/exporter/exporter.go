// Package exporter publishes identification records as Prometheus metrics.
// Each scrape opens the device, reads the whole record and closes it again.
package exporter

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"cpuidg/internal/cpuid"
	"cpuidg/internal/device"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cpuidg"

// Collector implements prometheus.Collector over a device.Node.
type Collector struct {
	node device.Node

	registerDesc *prometheus.Desc
	sizeDesc     *prometheus.Desc
	reads        prometheus.Counter
	busy         prometheus.Counter
	shortReads   prometheus.Counter
}

// NewCollector returns a collector reading from node.
func NewCollector(node device.Node) *Collector {
	constLabels := prometheus.Labels{"arch": node.Arch()}
	return &Collector{
		node: node,
		registerDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "register"),
			"Raw value of an identification register field, one series per 32-bit word",
			[]string{"field", "register", "bank", "word"},
			constLabels,
		),
		sizeDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "record_size_bytes"),
			"Size of the identification record",
			nil,
			constLabels,
		),
		reads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "reads_total",
			Help:        "Device reads performed by the exporter",
			ConstLabels: constLabels,
		}),
		busy: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "busy_total",
			Help:        "Scrapes that found the device already open",
			ConstLabels: constLabels,
		}),
		shortReads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "short_reads_total",
			Help:        "Reads that transferred fewer bytes than the record size",
			ConstLabels: constLabels,
		}),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.registerDesc
	ch <- c.sizeDesc
	c.reads.Describe(ch)
	c.busy.Describe(ch)
	c.shortReads.Describe(ch)
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.sizeDesc, prometheus.GaugeValue, float64(c.node.Size()))
	for _, v := range c.capture() {
		for _, w := range registerWords(v) {
			ch <- prometheus.MustNewConstMetric(c.registerDesc, prometheus.GaugeValue, float64(w.value), v.Name, v.Register, string(v.Bank), w.name)
		}
	}
	c.reads.Collect(ch)
	c.busy.Collect(ch)
	c.shortReads.Collect(ch)
}

type word struct {
	name  string
	value uint32
}

// registerWords splits a field into 32-bit words. A float64 sample holds
// only 53 bits exactly, so 8-byte fields are exported as "lo" and "hi".
func registerWords(v cpuid.Value) []word {
	if v.Width <= 4 {
		return []word{{"lo", uint32(v.Value)}}
	}
	return []word{{"lo", uint32(v.Value)}, {"hi", uint32(v.Value >> 32)}}
}

// capture reads one record. A busy device yields no register values for this
// scrape; the next scrape tries again.
func (c *Collector) capture() []cpuid.Value {
	f, err := c.node.Open()
	if err != nil {
		if errors.Is(err, device.ErrBusy) {
			c.busy.Inc()
			slog.Warn("device busy, skipping register values for this scrape")
		} else {
			slog.Error("failed to open device", slog.String("error", err.Error()))
		}
		return nil
	}
	defer f.Close()
	size := c.node.Size()
	buf := make(device.Buffer, size)
	n := f.Read(buf, size)
	c.reads.Inc()
	if n < size {
		c.shortReads.Inc()
		slog.Warn("short device read", slog.Int("transferred", n), slog.Int("size", size))
	}
	return cpuid.Decode(c.node.Layout(), buf[:n])
}

// Handler returns an HTTP handler serving the collector from a private
// registry.
func Handler(c *Collector) (http.Handler, error) {
	registry := prometheus.NewRegistry()
	if err := registry.Register(c); err != nil {
		return nil, err
	}
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), nil
}

// NewServer returns an HTTP server exposing the collector at /metrics.
func NewServer(listenAddr string, c *Collector) (*http.Server, error) {
	handler, err := Handler(c)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	return &http.Server{
		Addr:              listenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 3 * time.Second,
	}, nil
}
