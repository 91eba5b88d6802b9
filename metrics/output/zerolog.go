// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package output

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Output periodically logs the current value of every metric of a gatherer,
// and logs them one last time when stopped.
type Output struct {
	log      zerolog.Logger
	interval time.Duration
	gatherer prometheus.Gatherer
	done     chan struct{}
	wg       *sync.WaitGroup
}

func New(log zerolog.Logger, gatherer prometheus.Gatherer, interval time.Duration) *Output {
	o := Output{
		log:      log.With().Str("component", "metrics").Logger(),
		interval: interval,
		gatherer: gatherer,
		done:     make(chan struct{}),
		wg:       &sync.WaitGroup{},
	}
	return &o
}

func (o *Output) Run() {
	o.wg.Add(1)
	go o.loop()
}

func (o *Output) Stop() {
	close(o.done)
	o.wg.Wait()
}

func (o *Output) loop() {
	defer o.wg.Done()
	ticker := time.NewTicker(o.interval)
Loop:
	for {
		select {
		case <-o.done:
			break Loop
		case <-ticker.C:
			o.print()
		}
	}
	o.print()
	ticker.Stop()
}

func (o *Output) print() {
	families, err := o.gatherer.Gather()
	if err != nil {
		o.log.Warn().Err(err).Msg("could not gather metrics")
		return
	}

	for _, family := range families {
		for _, metric := range family.GetMetric() {
			event := o.log.Debug().Str("metric", family.GetName())
			for _, label := range metric.GetLabel() {
				event = event.Str(label.GetName(), label.GetValue())
			}
			switch {
			case metric.GetCounter() != nil:
				event = event.Float64("value", metric.GetCounter().GetValue())
			case metric.GetGauge() != nil:
				event = event.Float64("value", metric.GetGauge().GetValue())
			case metric.GetHistogram() != nil:
				event = event.
					Uint64("count", metric.GetHistogram().GetSampleCount()).
					Float64("sum", metric.GetHistogram().GetSampleSum())
			}
			event.Msg("metric value")
		}
	}
}
