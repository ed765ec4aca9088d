package apiserver_test

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"

	"github.com/go-kit/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	v1 "github.com/dcm-project/compute-provisioner/api/v1"
	apiserver "github.com/dcm-project/compute-provisioner/internal/api_server"
	"github.com/dcm-project/compute-provisioner/internal/compute/computetest"
	"github.com/dcm-project/compute-provisioner/internal/config"
	"github.com/dcm-project/compute-provisioner/internal/handlers"
	"github.com/dcm-project/compute-provisioner/internal/metrics"
	"github.com/dcm-project/compute-provisioner/internal/provider"
	awsprovider "github.com/dcm-project/compute-provisioner/internal/provider/aws"
	"github.com/dcm-project/compute-provisioner/internal/service"
)

var _ = Describe("Server", func() {
	var (
		reg      *prometheus.Registry
		listener net.Listener
		srv      *apiserver.Server
	)

	BeforeEach(func() {
		reg = prometheus.NewRegistry()
		registry := provider.NewRegistry()
		backend := computetest.NewFakeBackend(computetest.NewNode("web", 0, "us-east-1a"))
		Expect(registry.Register(awsprovider.NewAdapter(backend, log.NewNopLogger()))).To(Succeed())
		svc := service.NewComputeService(registry, metrics.New(reg), log.NewNopLogger(), 2)

		var err error
		listener, err = net.Listen("tcp", "127.0.0.1:0")
		Expect(err).NotTo(HaveOccurred())
		srv = apiserver.New(&config.Config{}, listener, handlers.NewHandler(svc, log.NewNopLogger()), reg, log.NewNopLogger())
	})

	Describe("Router", func() {
		It("mounts the compute API under the base path", func() {
			router, err := srv.Router()
			Expect(err).NotTo(HaveOccurred())

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, v1.BasePath+"/instances", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(`"cloudProvider":"AWS"`))
		})

		It("exposes the service metrics", func() {
			router, err := srv.Router()
			Expect(err).NotTo(HaveOccurred())
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, v1.BasePath+"/instances", nil))

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(`compute_provisioner_discovery_requests_total{provider="AWS",result="success"} 1`))
		})

		It("serves the OpenAPI document", func() {
			router, err := srv.Router()
			Expect(err).NotTo(HaveOccurred())

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, v1.BasePath+"/openapi.yaml", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(Equal("application/yaml"))
			Expect(rec.Body.Bytes()).To(Equal(v1.Spec()))
		})

		It("returns 404 outside the API", func() {
			router, err := srv.Router()
			Expect(err).NotTo(HaveOccurred())

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v2/compute/instances", nil))

			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("Run", func() {
		It("serves until the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- srv.Run(ctx) }()

			url := fmt.Sprintf("http://%s%s/health", listener.Addr().String(), v1.BasePath)
			Eventually(func() (int, error) {
				resp, err := http.Get(url)
				if err != nil {
					return 0, err
				}
				defer resp.Body.Close()
				return resp.StatusCode, nil
			}).Should(Equal(http.StatusOK))

			cancel()
			Eventually(done).Should(Receive(BeNil()))
		})
	})
})
