package service_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/go-kit/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dcm-project/compute-provisioner/internal/compute"
	"github.com/dcm-project/compute-provisioner/internal/compute/computetest"
	"github.com/dcm-project/compute-provisioner/internal/metrics"
	"github.com/dcm-project/compute-provisioner/internal/provider"
	awsprovider "github.com/dcm-project/compute-provisioner/internal/provider/aws"
	"github.com/dcm-project/compute-provisioner/internal/provider/gcp"
	"github.com/dcm-project/compute-provisioner/internal/service"
)

// panicAdapter fails every call with a panic.
type panicAdapter struct{}

func (panicAdapter) Name() string { return "Broken" }

func (panicAdapter) Discover(ctx context.Context, criteria compute.SearchCriteria) ([]compute.InstanceRecord, error) {
	panic("nil client")
}

func (panicAdapter) Create(ctx context.Context, template compute.InstanceTemplate) (*compute.ProvisionOutcome, error) {
	panic("nil client")
}

// slowAdapter tracks how many calls run at once.
type slowAdapter struct {
	running atomic.Int32
	peak    atomic.Int32
}

func (a *slowAdapter) Name() string { return "Slow" }

func (a *slowAdapter) Discover(ctx context.Context, criteria compute.SearchCriteria) ([]compute.InstanceRecord, error) {
	return nil, nil
}

func (a *slowAdapter) Create(ctx context.Context, template compute.InstanceTemplate) (*compute.ProvisionOutcome, error) {
	n := a.running.Add(1)
	defer a.running.Add(-1)
	for {
		peak := a.peak.Load()
		if n <= peak || a.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	return compute.NewProvisionOutcome(template, nil), nil
}

func gcpTemplate(hardware string) compute.InstanceTemplate {
	return compute.InstanceTemplate{
		CloudProvider: "GCP",
		ImageID:       "debian-12",
		LocationID:    "us-central1-a",
		HardwareID:    hardware,
		OS64Bit:       true,
		GroupName:     "api",
		InstanceCount: 2,
	}
}

var _ = Describe("ComputeService", func() {
	var (
		ctx        context.Context
		awsBackend *computetest.FakeBackend
		gcpBackend *computetest.FakeBackend
		registry   *provider.Registry
		reg        *prometheus.Registry
		svc        *service.ComputeService
	)

	BeforeEach(func() {
		ctx = context.Background()
		awsBackend = computetest.NewFakeBackend(
			computetest.NewNode("web", 0, "us-east-1a"),
			computetest.NewNode("web", 1, "eu-west-1b"),
		)
		gcpBackend = computetest.NewFakeBackend(
			computetest.NewNode("api", 0, "us-central1-a"),
		)
		gcpBackend.Hardware = []compute.Hardware{{ID: "zones/us-central1-a/machineTypes/e2-micro", Name: "e2-micro", Location: computetest.Zone("us-central1-a")}}
		gcpBackend.Images = []compute.Image{{ID: "projects/debian-cloud/global/images/debian-12", Name: "debian-12"}}

		registry = provider.NewRegistry()
		Expect(registry.Register(awsprovider.NewAdapter(awsBackend, log.NewNopLogger()))).To(Succeed())
		Expect(registry.Register(gcp.NewAdapter(gcpBackend, log.NewNopLogger()))).To(Succeed())

		reg = prometheus.NewRegistry()
		svc = service.NewComputeService(registry, metrics.New(reg), log.NewNopLogger(), 4)
	})

	Describe("DiscoverAll", func() {
		It("queries every provider in registration order by default", func() {
			outcomes, err := svc.DiscoverAll(ctx, nil, compute.SearchCriteria{})

			Expect(err).NotTo(HaveOccurred())
			Expect(outcomes).To(HaveLen(2))
			Expect(outcomes[0].Provider).To(Equal("AWS"))
			Expect(outcomes[0].Instances).To(HaveLen(2))
			Expect(outcomes[1].Provider).To(Equal("GCP"))
			Expect(outcomes[1].Instances).To(HaveLen(1))
		})

		It("keeps a known provider's result next to an unknown one", func() {
			outcomes, err := svc.DiscoverAll(ctx, []string{"AWS", "Azure"}, compute.SearchCriteria{})

			Expect(err).NotTo(HaveOccurred())
			Expect(outcomes).To(HaveLen(2))
			Expect(outcomes[0].Err).NotTo(HaveOccurred())
			Expect(outcomes[0].Instances).To(HaveLen(2))
			Expect(outcomes[1].Provider).To(Equal("Azure"))
			Expect(compute.ErrorCode(outcomes[1].Err)).To(Equal(compute.ErrCodeUnknownProvider))
		})

		It("fails the request when no provider resolves", func() {
			outcomes, err := svc.DiscoverAll(ctx, []string{"Azure"}, compute.SearchCriteria{})

			Expect(outcomes).To(BeNil())
			var svcErr *service.ServiceError
			Expect(errors.As(err, &svcErr)).To(BeTrue())
			Expect(svcErr.Code).To(Equal(service.ErrCodeUnknownProvider))
		})

		It("isolates a failing provider", func() {
			gcpBackend.ListErr = errors.New("quota exceeded")

			outcomes, err := svc.DiscoverAll(ctx, nil, compute.SearchCriteria{Regions: []string{"us-east-1"}})

			Expect(err).NotTo(HaveOccurred())
			Expect(outcomes[0].Instances).To(HaveLen(1))
			Expect(outcomes[1].Instances).To(BeNil())
			Expect(compute.ErrorCode(outcomes[1].Err)).To(Equal(compute.ErrCodeDiscovery))
			Expect(counterValue(reg, "compute_provisioner_discovery_requests_total",
				map[string]string{"provider": "GCP", "result": "error"})).To(Equal(1.0))
		})

		It("returns an empty list for a provider with no instances", func() {
			outcomes, err := svc.DiscoverAll(ctx, []string{"GCP"}, compute.SearchCriteria{Regions: []string{"asia-east1"}})

			Expect(err).NotTo(HaveOccurred())
			Expect(outcomes[0].Instances).NotTo(BeNil())
			Expect(outcomes[0].Instances).To(BeEmpty())
		})

		It("recovers a panicking adapter into its slot", func() {
			Expect(registry.Register(panicAdapter{})).To(Succeed())

			outcomes, err := svc.DiscoverAll(ctx, []string{"broken", "aws"}, compute.SearchCriteria{})

			Expect(err).NotTo(HaveOccurred())
			Expect(compute.ErrorCode(outcomes[0].Err)).To(Equal(compute.ErrCodeDiscovery))
			Expect(outcomes[0].Err.Error()).To(ContainSubstring("nil client"))
			Expect(outcomes[1].Instances).To(HaveLen(2))
		})
	})

	Describe("CreateAll", func() {
		It("scopes a bad template to its own slot", func() {
			okFirst := gcpTemplate("e2-micro")
			bad := gcpTemplate("n9-mega")
			okSecond := gcpTemplate("e2-micro")
			okSecond.GroupName = "worker"

			results, err := svc.CreateAll(ctx, []compute.InstanceTemplate{okFirst, bad, okSecond})

			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(3))
			Expect(results[0].Outcome.Status).To(Equal(compute.StatusSuccess))
			Expect(results[1].Outcome).To(BeNil())
			Expect(compute.ErrorCode(results[1].Err)).To(Equal(compute.ErrCodeNotFound))
			Expect(results[2].Outcome.Status).To(Equal(compute.StatusSuccess))
			Expect(results[2].Outcome.Template).To(Equal(okSecond))
		})

		It("preserves input order across providers", func() {
			awsTemplate := compute.InstanceTemplate{CloudProvider: "aws", ImageID: "ami-1", HardwareID: "t3.micro", LocationID: "us-east-1a", GroupName: "web", InstanceCount: 1}
			templates := []compute.InstanceTemplate{gcpTemplate("e2-micro"), awsTemplate, gcpTemplate("e2-micro")}

			results, err := svc.CreateAll(ctx, templates)

			Expect(err).NotTo(HaveOccurred())
			for i, r := range results {
				Expect(r.Template).To(Equal(templates[i]))
				Expect(r.Outcome.Template).To(Equal(templates[i]))
			}
			Expect(awsBackend.CreateCalls).To(HaveLen(1))
			Expect(gcpBackend.CreateCalls).To(HaveLen(2))
		})

		It("reports partial success without failing the request", func() {
			gcpBackend.CreateLimit = 1

			results, err := svc.CreateAll(ctx, []compute.InstanceTemplate{gcpTemplate("e2-micro")})

			Expect(err).NotTo(HaveOccurred())
			Expect(results[0].Err).NotTo(HaveOccurred())
			Expect(results[0].Outcome.Status).To(Equal(compute.StatusPartialSuccess))
			Expect(counterValue(reg, "compute_provisioner_provision_templates_total",
				map[string]string{"provider": "GCP", "status": "Partial Success"})).To(Equal(1.0))
		})

		It("rejects an empty batch", func() {
			results, err := svc.CreateAll(ctx, nil)

			Expect(results).To(BeNil())
			var svcErr *service.ServiceError
			Expect(errors.As(err, &svcErr)).To(BeTrue())
			Expect(svcErr.Code).To(Equal(service.ErrCodeValidation))
		})

		It("requires a provider when several are registered", func() {
			template := gcpTemplate("e2-micro")
			template.CloudProvider = ""

			results, err := svc.CreateAll(ctx, []compute.InstanceTemplate{template})

			Expect(err).NotTo(HaveOccurred())
			var pErr *compute.ProviderError
			Expect(errors.As(results[0].Err, &pErr)).To(BeTrue())
			Expect(pErr.Code).To(Equal(compute.ErrCodeValidation))
			Expect(pErr.Field).To(Equal("cloudProvider"))
		})

		It("routes to the only registered provider when none is named", func() {
			single := provider.NewRegistry()
			Expect(single.Register(gcp.NewAdapter(gcpBackend, log.NewNopLogger()))).To(Succeed())
			svc = service.NewComputeService(single, nil, log.NewNopLogger(), 0)
			template := gcpTemplate("e2-micro")
			template.CloudProvider = ""

			results, err := svc.CreateAll(ctx, []compute.InstanceTemplate{template})

			Expect(err).NotTo(HaveOccurred())
			Expect(results[0].Outcome.Status).To(Equal(compute.StatusSuccess))
		})

		It("rejects a template requesting no instances", func() {
			template := gcpTemplate("e2-micro")
			template.InstanceCount = 0

			results, _ := svc.CreateAll(ctx, []compute.InstanceTemplate{template})

			var pErr *compute.ProviderError
			Expect(errors.As(results[0].Err, &pErr)).To(BeTrue())
			Expect(pErr.Field).To(Equal("instanceCount"))
			Expect(gcpBackend.CreateCalls).To(BeEmpty())
		})

		DescribeTable("rejects a template missing a required field in its own slot",
			func(field string, clear func(*compute.InstanceTemplate)) {
				bad := gcpTemplate("e2-micro")
				clear(&bad)

				results, err := svc.CreateAll(ctx, []compute.InstanceTemplate{gcpTemplate("e2-micro"), bad})

				Expect(err).NotTo(HaveOccurred())
				Expect(results[0].Outcome.Status).To(Equal(compute.StatusSuccess))
				var pErr *compute.ProviderError
				Expect(errors.As(results[1].Err, &pErr)).To(BeTrue())
				Expect(pErr.Code).To(Equal(compute.ErrCodeValidation))
				Expect(pErr.Field).To(Equal(field))
				Expect(gcpBackend.CreateCalls).To(HaveLen(1))
			},
			Entry("image", "imageId", func(t *compute.InstanceTemplate) { t.ImageID = "" }),
			Entry("location", "locationId", func(t *compute.InstanceTemplate) { t.LocationID = "" }),
			Entry("hardware", "hardwareId", func(t *compute.InstanceTemplate) { t.HardwareID = " " }),
			Entry("group", "groupName", func(t *compute.InstanceTemplate) { t.GroupName = "" }),
		)

		It("rejects an instance count beyond the backend limit", func() {
			template := gcpTemplate("e2-micro")
			template.InstanceCount = compute.MaxInstanceCount + 1

			results, _ := svc.CreateAll(ctx, []compute.InstanceTemplate{template})

			var pErr *compute.ProviderError
			Expect(errors.As(results[0].Err, &pErr)).To(BeTrue())
			Expect(pErr.Code).To(Equal(compute.ErrCodeValidation))
			Expect(pErr.Field).To(Equal("instanceCount"))
			Expect(gcpBackend.CreateCalls).To(BeEmpty())
		})

		It("reports an unknown provider in its slot", func() {
			template := gcpTemplate("e2-micro")
			template.CloudProvider = "Azure"

			results, err := svc.CreateAll(ctx, []compute.InstanceTemplate{template, gcpTemplate("e2-micro")})

			Expect(err).NotTo(HaveOccurred())
			Expect(compute.ErrorCode(results[0].Err)).To(Equal(compute.ErrCodeUnknownProvider))
			Expect(results[1].Outcome.Status).To(Equal(compute.StatusSuccess))
		})

		It("recovers a panicking adapter into its slot", func() {
			Expect(registry.Register(panicAdapter{})).To(Succeed())
			template := gcpTemplate("e2-micro")
			template.CloudProvider = "Broken"

			results, err := svc.CreateAll(ctx, []compute.InstanceTemplate{template})

			Expect(err).NotTo(HaveOccurred())
			Expect(results[0].Outcome).To(BeNil())
			Expect(compute.ErrorCode(results[0].Err)).To(Equal(compute.ErrCodeCreation))
		})

		It("bounds the number of concurrent units", func() {
			slow := &slowAdapter{}
			limited := provider.NewRegistry()
			Expect(limited.Register(slow)).To(Succeed())
			svc = service.NewComputeService(limited, nil, log.NewNopLogger(), 2)

			templates := make([]compute.InstanceTemplate, 6)
			for i := range templates {
				templates[i] = gcpTemplate("e2-micro")
				templates[i].CloudProvider = "Slow"
			}
			_, err := svc.CreateAll(ctx, templates)

			Expect(err).NotTo(HaveOccurred())
			Expect(slow.peak.Load()).To(BeNumerically("<=", 2))
		})
	})
})

// counterValue reads one counter series from reg.
func counterValue(reg *prometheus.Registry, name string, labels map[string]string) float64 {
	families, err := reg.Gather()
	Expect(err).NotTo(HaveOccurred())
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	series:
		for _, metric := range mf.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if labels[pair.GetName()] != pair.GetValue() {
					continue series
				}
			}
			return metric.GetCounter().GetValue()
		}
	}
	Fail("metric " + name + " not found")
	return 0
}
