package logger_test

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/0-ACS-0/dmserver-go/logger"
	"github.com/0-ACS-0/dmserver-go/logger/config"
	"github.com/0-ACS-0/dmserver-go/logger/fields"
	"github.com/0-ACS-0/dmserver-go/logger/hook"
	"github.com/0-ACS-0/dmserver-go/logger/level"
)

var _ = Describe("Logger", func() {
	It("delivers queued entries to a custom hook", func() {
		var mu sync.Mutex
		var got []string

		cfg := config.Default()
		lg, err := logger.NewCustom(cfg, func(lvl logrus.Level, message string, f map[string]interface{}) {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, message)
		})
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = lg.Close() }()

		lg.Info("hello", fields.New().Add("k", "v"))

		Eventually(func() []string {
			mu.Lock()
			defer mu.Unlock()
			return got
		}, time.Second, 10*time.Millisecond).Should(ContainElement("hello"))
	})

	It("filters entries below the configured level", func() {
		var mu sync.Mutex
		var count int

		cfg := config.Default()
		lg, err := logger.NewCustom(cfg, func(lvl logrus.Level, message string, f map[string]interface{}) {
			mu.Lock()
			defer mu.Unlock()
			count++
		})
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = lg.Close() }()

		lg.SetLevel(level.WarnLevel)
		lg.Debug("should be dropped", nil)
		lg.Info("also dropped", nil)
		lg.Warning("kept", nil)

		Eventually(func() int {
			mu.Lock()
			defer mu.Unlock()
			return count
		}, time.Second, 10*time.Millisecond).Should(Equal(1))
	})

	It("survives many concurrent producers without blocking forever", func() {
		cfg := config.Default()
		cfg.QueueCapacity = 8
		cfg.QueueOverflow = config.OverflowDropNewest

		var mu sync.Mutex
		var count int
		lg, err := logger.NewCustom(cfg, func(lvl logrus.Level, message string, f map[string]interface{}) {
			mu.Lock()
			defer mu.Unlock()
			count++
		})
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = lg.Close() }()

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				lg.Info("burst", nil)
			}()
		}

		done := make(chan struct{})
		go func() { wg.Wait(); close(done) }()

		Eventually(done, time.Second).Should(BeClosed())
	})

	It("rejects an invalid hook configuration", func() {
		cfg := config.Default()
		cfg.Output = config.OutputFile
		_, err := logger.New(cfg)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("hook.Hook implementations", func() {
	It("builds a stdout hook that accepts all levels", func() {
		h := hook.NewStdout(true)
		Expect(h.Levels()).To(Equal(logrus.AllLevels))
		Expect(h.Close()).To(Succeed())
	})
})
