package compute_test

import (
	"context"
	"errors"

	"github.com/dcm-project/compute-provisioner/internal/compute"
	"github.com/dcm-project/compute-provisioner/internal/compute/computetest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CollectNodes", func() {
	var (
		ctx     context.Context
		backend *computetest.FakeBackend
	)

	BeforeEach(func() {
		ctx = context.Background()
		backend = computetest.NewFakeBackend(
			computetest.NewNode("east", 0, "us-east-1a"),
			computetest.NewNode("east", 1, "us-east-1b"),
			computetest.NewNode("west", 0, "us-west-2a"),
		)
	})

	It("lists every node when no region is given", func() {
		nodes, err := compute.CollectNodes(ctx, backend, compute.SearchCriteria{})

		Expect(err).NotTo(HaveOccurred())
		Expect(nodes).To(HaveLen(3))
	})

	It("lists regions in the order given", func() {
		nodes, err := compute.CollectNodes(ctx, backend, compute.SearchCriteria{Regions: []string{"us-west-2", "us-east-1"}})

		Expect(err).NotTo(HaveOccurred())
		Expect(nodes).To(HaveLen(3))
		Expect(nodes[0].Location.ID).To(Equal("us-west-2a"))
	})

	It("returns a node once per matching filter", func() {
		nodes, err := compute.CollectNodes(ctx, backend, compute.SearchCriteria{Regions: []string{"us-east-1", "us-east-1a"}})

		Expect(err).NotTo(HaveOccurred())
		Expect(nodes).To(HaveLen(3))
		Expect(nodes[0].ID).To(Equal(nodes[2].ID))
	})

	It("aborts on the first backend error", func() {
		backend.ListErr = errors.New("boom")

		nodes, err := compute.CollectNodes(ctx, backend, compute.SearchCriteria{Regions: []string{"us-east-1"}})

		Expect(err).To(MatchError(ContainSubstring("us-east-1")))
		Expect(nodes).To(BeNil())
	})
})

var _ = Describe("Catalog lookups", func() {
	It("finds hardware by exact name", func() {
		profiles := []compute.Hardware{{ID: "1", Name: "n1-standard-1"}, {ID: "2", Name: "e2-medium"}}

		found := compute.FindHardware(profiles, "e2-medium", "")

		Expect(found.Found).To(BeTrue())
		Expect(found.Value.ID).To(Equal("2"))
	})

	It("prefers the profile located in the requested zone", func() {
		profiles := []compute.Hardware{
			{ID: "a", Name: "e2-medium", Location: computetest.Zone("us-central1-a")},
			{ID: "b", Name: "e2-medium", Location: computetest.Zone("europe-west1-b")},
		}

		found := compute.FindHardware(profiles, "e2-medium", "europe-west1-b")

		Expect(found.Found).To(BeTrue())
		Expect(found.Value.ID).To(Equal("b"))
	})

	It("reports hardware that does not match exactly as not found", func() {
		found := compute.FindHardware([]compute.Hardware{{Name: "e2-medium"}}, "e2-Medium", "")

		Expect(found.Found).To(BeFalse())
		Expect(found.Name).To(Equal("e2-Medium"))
	})

	It("finds images by exact name", func() {
		images := []compute.Image{{ID: "x", Name: "debian-12"}}

		Expect(compute.FindImage(images, "debian-12").Found).To(BeTrue())
		Expect(compute.FindImage(images, "debian").Found).To(BeFalse())
	})
})

var _ = Describe("ProviderError", func() {
	It("classifies wrapped unavailability as BackendUnavailable", func() {
		err := compute.NewDiscoveryError("AWS", errors.Join(compute.ErrBackendUnavailable, errors.New("dial tcp")))

		Expect(err.Code).To(Equal(compute.ErrCodeBackendUnavailable))
		Expect(errors.Is(err, compute.ErrBackendUnavailable)).To(BeTrue())
	})

	It("names the provider and field of a not found error", func() {
		err := compute.NewNotFoundError("GCP", "hardwareId", "huge")

		Expect(err.Error()).To(ContainSubstring("GCP"))
		Expect(err.Error()).To(ContainSubstring("huge"))
		Expect(err.Field).To(Equal("hardwareId"))
		Expect(compute.ErrorCode(err)).To(Equal(compute.ErrCodeNotFound))
	})
})
