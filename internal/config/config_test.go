package config_test

import (
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dcm-project/compute-provisioner/internal/config"
)

var managedVars = []string{
	"SVC_ADDRESS", "SVC_LOG_LEVEL", "SVC_LOG_FORMAT", "DISPATCH_MAX_PARALLEL",
	"AWS_ENABLED", "AWS_DEFAULT_REGION", "AWS_REGIONS", "AWS_PROFILE",
	"GCP_ENABLED", "GCP_PROJECT", "GCP_ENDPOINT", "GCP_ACCESS_TOKEN",
	"GCP_IMAGE_PROJECTS", "GCP_NETWORK", "GCP_TIMEOUT", "GCP_RETRY_COUNT", "GCP_OPERATION_POLL",
}

var _ = Describe("Load", func() {
	BeforeEach(func() {
		for _, name := range managedVars {
			if value, ok := os.LookupEnv(name); ok {
				DeferCleanup(os.Setenv, name, value)
				Expect(os.Unsetenv(name)).To(Succeed())
			}
		}
	})

	It("applies defaults", func() {
		cfg, err := config.Load()

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Service.Address).To(Equal(":8080"))
		Expect(cfg.Service.LogLevel).To(Equal("info"))
		Expect(cfg.Service.LogFormat).To(Equal("logfmt"))
		Expect(cfg.Dispatch.MaxParallel).To(Equal(8))
		Expect(cfg.AWS.Enabled).To(BeTrue())
		Expect(cfg.AWS.DefaultRegion).To(Equal("us-east-1"))
		Expect(cfg.AWS.Regions).To(BeEmpty())
		Expect(cfg.GCP.Enabled).To(BeFalse())
		Expect(cfg.GCP.ImageProjects).To(Equal([]string{"debian-cloud", "ubuntu-os-cloud"}))
		Expect(cfg.GCP.Timeout).To(Equal(30 * time.Second))
		Expect(cfg.GCP.OperationPoll).To(Equal(2 * time.Second))
	})

	It("reads provider settings", func() {
		GinkgoT().Setenv("AWS_REGIONS", "us-east-1,eu-west-1")
		GinkgoT().Setenv("GCP_ENABLED", "true")
		GinkgoT().Setenv("GCP_PROJECT", "acme-prod")
		GinkgoT().Setenv("GCP_RETRY_COUNT", "5")

		cfg, err := config.Load()

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.AWS.Regions).To(Equal([]string{"us-east-1", "eu-west-1"}))
		Expect(cfg.GCP.Enabled).To(BeTrue())
		Expect(cfg.GCP.Project).To(Equal("acme-prod"))
		Expect(cfg.GCP.RetryCount).To(Equal(5))
	})

	It("falls back to info for an unknown log level", func() {
		GinkgoT().Setenv("SVC_LOG_LEVEL", "verbose")

		cfg, err := config.Load()

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Service.LogLevel).To(Equal("info"))
	})

	It("falls back to logfmt for an unknown log format", func() {
		GinkgoT().Setenv("SVC_LOG_FORMAT", "xml")

		cfg, err := config.Load()

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Service.LogFormat).To(Equal("logfmt"))
	})

	It("requires at least one provider", func() {
		GinkgoT().Setenv("AWS_ENABLED", "false")

		_, err := config.Load()

		Expect(err).To(MatchError(ContainSubstring("at least one")))
	})

	It("requires a project when GCP is enabled", func() {
		GinkgoT().Setenv("GCP_ENABLED", "true")

		_, err := config.Load()

		Expect(err).To(MatchError(ContainSubstring("GCP_PROJECT")))
	})

	It("rejects a malformed duration", func() {
		GinkgoT().Setenv("GCP_TIMEOUT", "soon")

		_, err := config.Load()

		Expect(err).To(HaveOccurred())
	})

	It("rejects a non-positive dispatch limit", func() {
		GinkgoT().Setenv("DISPATCH_MAX_PARALLEL", "0")

		_, err := config.Load()

		Expect(err).To(MatchError(ContainSubstring("DISPATCH_MAX_PARALLEL")))
	})
})
