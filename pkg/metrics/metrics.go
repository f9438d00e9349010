package metrics

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 业务与请求计数器
// 所有方法对 nil 接收者安全，未启用指标时传 nil 即可
type Metrics struct {
	registry *prometheus.Registry

	SuccessfulRequests *prometheus.CounterVec
	BadRequests        *prometheus.CounterVec
	FailedRequests     *prometheus.CounterVec
	Follows            prometheus.Counter
	Unfollows          prometheus.Counter
	Likes              prometheus.Counter
	Unlikes            prometheus.Counter
	Posts              prometheus.Counter
	Approvals          prometheus.Counter
	Registrations      prometheus.Counter
}

// New 创建并注册计数器，使用独立的 Registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SuccessfulRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_request",
				Help: "Total number of successful (2xx) HTTP requests",
			},
			[]string{"path"},
		),
		BadRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "unsuccessful_request",
				Help: "Total number of unsuccessful (4xx) HTTP requests",
			},
			[]string{"path"},
		),
		FailedRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "failed_request",
				Help: "Total number of failed (5xx) HTTP requests",
			},
			[]string{"path"},
		),
		Follows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "successful_follows",
			Help: "Total number of follow relationships created",
		}),
		Unfollows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "successful_unfollows",
			Help: "Total number of unfollow requests handled",
		}),
		Likes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "successful_likes",
			Help: "Total number of likes created",
		}),
		Unlikes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "successful_unlikes",
			Help: "Total number of unlike requests handled",
		}),
		Posts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "successful_posts",
			Help: "Total number of posts created",
		}),
		Approvals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "approved_follow_requests",
			Help: "Total number of follow requests approved",
		}),
		Registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "registered_users",
			Help: "Total number of users registered",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.SuccessfulRequests,
		m.BadRequests,
		m.FailedRequests,
		m.Follows,
		m.Unfollows,
		m.Likes,
		m.Unlikes,
		m.Posts,
		m.Approvals,
		m.Registrations,
	)
	return m
}

// Registry 底层 Registry
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler 指标暴露接口
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware 按状态码统计请求，path 使用路由模板避免标签爆炸
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if m == nil {
			return
		}

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()
		switch {
		case status >= 500:
			m.FailedRequests.WithLabelValues(path).Inc()
		case status >= 400:
			m.BadRequests.WithLabelValues(path).Inc()
		case status >= 200 && status < 300:
			m.SuccessfulRequests.WithLabelValues(path).Inc()
		}
	}
}

func (m *Metrics) IncFollow() {
	if m != nil {
		m.Follows.Inc()
	}
}

func (m *Metrics) IncUnfollow() {
	if m != nil {
		m.Unfollows.Inc()
	}
}

func (m *Metrics) IncLike() {
	if m != nil {
		m.Likes.Inc()
	}
}

func (m *Metrics) IncUnlike() {
	if m != nil {
		m.Unlikes.Inc()
	}
}

func (m *Metrics) IncPost() {
	if m != nil {
		m.Posts.Inc()
	}
}

func (m *Metrics) IncApproval() {
	if m != nil {
		m.Approvals.Inc()
	}
}

func (m *Metrics) IncRegistration() {
	if m != nil {
		m.Registrations.Inc()
	}
}
