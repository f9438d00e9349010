package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
)

// -------------------- 系统监控 --------------------

type SystemStats struct {
	Timestamp  time.Time
	HeapMB     float64
	SysMB      float64
	Goroutines int
}

type Monitor struct {
	mu       sync.Mutex
	stats    []SystemStats
	interval time.Duration
	stopChan chan struct{}
	done     chan struct{}
}

func NewMonitor(interval time.Duration) *Monitor {
	return &Monitor{
		stats:    make([]SystemStats, 0, 512),
		interval: interval,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (m *Monitor) collect() SystemStats {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	s := SystemStats{
		Timestamp:  time.Now(),
		HeapMB:     float64(ms.HeapAlloc) / 1024 / 1024,
		SysMB:      float64(ms.Sys) / 1024 / 1024,
		Goroutines: runtime.NumGoroutine(),
	}
	m.mu.Lock()
	m.stats = append(m.stats, s)
	m.mu.Unlock()
	return s
}

func (m *Monitor) Start() {
	go func() {
		defer close(m.done)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s := m.collect()
				fmt.Printf("[%s] 堆内存: %.1fMB | 系统内存: %.1fMB | Goroutines: %d\n",
					s.Timestamp.Format("15:04:05"), s.HeapMB, s.SysMB, s.Goroutines)
			case <-m.stopChan:
				return
			}
		}
	}()
}

func (m *Monitor) Stop() {
	close(m.stopChan)
	<-m.done
}

func (m *Monitor) SaveToFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	m.mu.Lock()
	defer m.mu.Unlock()
	_, _ = f.WriteString("Timestamp,HeapMB,SysMB,Goroutines\n")
	for _, s := range m.stats {
		_, _ = fmt.Fprintf(f, "%s,%.2f,%.2f,%d\n", s.Timestamp.Format("2006-01-02 15:04:05"), s.HeapMB, s.SysMB, s.Goroutines)
	}
	return nil
}

// -------------------- HTTP 并发压测 --------------------

type APITestStats struct {
	mu                 sync.Mutex
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	totalLatency       time.Duration
	MaxLatency         time.Duration
	MinLatency         time.Duration
}

func (s *APITestStats) Add(success bool, latency time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TotalRequests++
	if !success {
		s.FailedRequests++
		return
	}
	s.SuccessfulRequests++
	s.totalLatency += latency
	if latency > s.MaxLatency {
		s.MaxLatency = latency
	}
	if s.MinLatency == 0 || latency < s.MinLatency {
		s.MinLatency = latency
	}
}

func (s *APITestStats) AverageLatency() time.Duration {
	if s.SuccessfulRequests == 0 {
		return 0
	}
	return s.totalLatency / time.Duration(s.SuccessfulRequests)
}

var client = &http.Client{Timeout: 8 * time.Second}

func send(method, url string, body interface{}) (int, []byte, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return 0, nil, err
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	var out bytes.Buffer
	_, _ = out.ReadFrom(resp.Body)
	return resp.StatusCode, out.Bytes(), nil
}

// registerUser 注册一个压测用户，返回其ID
func registerUser(base string) (string, error) {
	handle := "bench_" + uuid.NewString()[:8]
	code, body, err := send(http.MethodPost, base+"/api/users", map[string]interface{}{
		"userData": map[string]interface{}{
			"uuid":          uuid.NewString(),
			"accountHandle": handle,
			"displayName":   handle,
			"email":         handle + "@bench.local",
		},
	})
	if err != nil {
		return "", err
	}
	if code != http.StatusCreated {
		return "", fmt.Errorf("register %s: status %d: %s", handle, code, body)
	}
	var env struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return "", err
	}
	return env.Data.ID, nil
}

func runHTTPBench(base string, concurrency, perGoroutine int) {
	fmt.Println("\n=== HTTP API并发测试开始 ===")
	fmt.Printf("目标: %s 并发: %d 每协程请求: %d\n", base, concurrency, perGoroutine)

	alice, err := registerUser(base)
	if err != nil {
		fmt.Println("准备测试用户失败:", err)
		return
	}
	bob, err := registerUser(base)
	if err != nil {
		fmt.Println("准备测试用户失败:", err)
		return
	}
	if code, _, err := send(http.MethodPost, base+"/api/follow", map[string]string{"followerId": bob, "followedId": alice}); err != nil || code != http.StatusCreated {
		fmt.Println("准备关注关系失败:", code, err)
		return
	}

	endpoints := []string{
		"/",
		"/health",
		"/api/profile/" + alice,
		"/api/profile/counts/" + alice,
		"/api/follow/status?current=" + bob + "&target=" + alice,
		"/api/follow?followers=" + alice,
	}

	stats := &APITestStats{}
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				url := base + endpoints[(id+j)%len(endpoints)]
				t0 := time.Now()
				code, _, err := send(http.MethodGet, url, nil)
				stats.Add(err == nil && code == http.StatusOK, time.Since(t0))
			}
		}(i)
	}
	wg.Wait()

	took := time.Since(start)
	fmt.Println("\n=== HTTP API测试结果 ===")
	fmt.Printf("耗时: %v\n", took)
	fmt.Printf("总请求: %d 成功: %d 失败: %d\n", stats.TotalRequests, stats.SuccessfulRequests, stats.FailedRequests)
	fmt.Printf("延迟 平均: %v 最大: %v 最小: %v\n", stats.AverageLatency(), stats.MaxLatency, stats.MinLatency)
	if took > 0 {
		fmt.Printf("QPS: %.2f\n", float64(stats.SuccessfulRequests)/took.Seconds())
	}
	if stats.TotalRequests > 0 {
		fmt.Printf("成功率: %.2f%%\n", float64(stats.SuccessfulRequests)/float64(stats.TotalRequests)*100)
	}
}

// -------------------- 入口 --------------------

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "服务地址")
	concurrency := flag.Int("c", 5, "并发协程数")
	perGoroutine := flag.Int("n", 10, "每协程请求数")
	output := flag.String("o", "system_monitor.csv", "监控数据输出文件")
	flag.Parse()

	fmt.Println("=== 社交服务并发与监控测试 ===")
	fmt.Printf("开始时间: %s\n", time.Now().Format("2006-01-02 15:04:05"))

	mon := NewMonitor(1 * time.Second)
	mon.Start()

	runHTTPBench(*baseURL, *concurrency, *perGoroutine)

	mon.Stop()
	if err := mon.SaveToFile(*output); err != nil {
		fmt.Println("保存监控数据失败:", err)
	} else {
		fmt.Println("监控数据已保存:", *output)
	}

	fmt.Println("\n=== 测试完成 ===")
}
