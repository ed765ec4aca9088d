package aws_test

import (
	"context"
	"errors"

	"github.com/go-kit/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dcm-project/compute-provisioner/internal/compute"
	"github.com/dcm-project/compute-provisioner/internal/compute/computetest"
	awsprovider "github.com/dcm-project/compute-provisioner/internal/provider/aws"
)

var _ = Describe("Adapter", func() {
	var (
		ctx      context.Context
		backend  *computetest.FakeBackend
		adapter  *awsprovider.Adapter
		template compute.InstanceTemplate
	)

	BeforeEach(func() {
		ctx = context.Background()
		backend = computetest.NewFakeBackend(
			computetest.NewNode("web", 0, "us-east-1a"),
			computetest.NewNode("web", 1, "us-west-2b"),
		)
		adapter = awsprovider.NewAdapter(backend, log.NewNopLogger())
		template = compute.InstanceTemplate{
			CloudProvider: "AWS",
			ImageID:       "ami-0abc",
			LocationID:    "us-east-1a",
			HardwareID:    "t3.micro",
			OS64Bit:       true,
			SecurityGroup: "sg-0123",
			KeyPair:       "ops",
			GroupName:     "web",
			InstanceCount: 2,
		}
	})

	It("is registered as AWS", func() {
		Expect(adapter.Name()).To(Equal("AWS"))
	})

	Describe("Discover", func() {
		It("maps every node once without a region filter", func() {
			records, err := adapter.Discover(ctx, compute.SearchCriteria{})

			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))
			Expect(records[0].Region).To(Equal("us-east-1"))
			Expect(records[1].Zone).To(Equal("us-west-2b"))
		})

		It("filters by region", func() {
			records, err := adapter.Discover(ctx, compute.SearchCriteria{Regions: []string{"us-west-2"}})

			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].ID).To(Equal("web-b"))
		})

		It("reports a discovery error and no partial results", func() {
			backend.ListErr = errors.New("throttled")

			records, err := adapter.Discover(ctx, compute.SearchCriteria{})

			Expect(records).To(BeNil())
			Expect(compute.ErrorCode(err)).To(Equal(compute.ErrCodeDiscovery))
		})
	})

	Describe("Create", func() {
		It("passes EC2 identifiers and options through to the backend", func() {
			_, err := adapter.Create(ctx, template)

			Expect(err).NotTo(HaveOccurred())
			Expect(backend.CreateCalls).To(HaveLen(1))
			call := backend.CreateCalls[0]
			Expect(call.GroupName).To(Equal("web"))
			Expect(call.Count).To(Equal(2))
			Expect(call.Spec.ImageID).To(Equal("ami-0abc"))
			Expect(call.Spec.HardwareID).To(Equal("t3.micro"))
			Expect(call.Spec.LocationID).To(Equal("us-east-1a"))
			Expect(call.Spec.OS64Bit).To(BeTrue())
			Expect(call.Spec.SecurityGroups).To(Equal([]string{"sg-0123"}))
			Expect(call.Spec.KeyPair).To(Equal("ops"))
		})

		It("reports success when every instance came up", func() {
			outcome, err := adapter.Create(ctx, template)

			Expect(err).NotTo(HaveOccurred())
			Expect(outcome.Status).To(Equal(compute.StatusSuccess))
			Expect(outcome.Count).To(Equal(2))
			Expect(outcome.Template).To(Equal(template))
		})

		It("reports partial success for a short batch", func() {
			backend.CreateLimit = 1

			outcome, err := adapter.Create(ctx, template)

			Expect(err).NotTo(HaveOccurred())
			Expect(outcome.Status).To(Equal(compute.StatusPartialSuccess))
			Expect(outcome.Instances).To(HaveLen(1))
		})

		It("reports failure when the batch returned nothing", func() {
			backend.CreateLimit = 0

			outcome, err := adapter.Create(ctx, template)

			Expect(err).NotTo(HaveOccurred())
			Expect(outcome.Status).To(Equal(compute.StatusFailure))
		})

		It("reports a creation error when the batch call fails", func() {
			backend.CreateErr = errors.New("InsufficientInstanceCapacity")

			outcome, err := adapter.Create(ctx, template)

			Expect(outcome).To(BeNil())
			Expect(compute.ErrorCode(err)).To(Equal(compute.ErrCodeCreation))
		})
	})
})
