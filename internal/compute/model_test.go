package compute_test

import (
	"github.com/dcm-project/compute-provisioner/internal/compute"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ProvisionOutcome", func() {
	Describe("DeriveStatus", func() {
		It("agrees with the counts for every created value up to requested", func() {
			for requested := 1; requested <= 6; requested++ {
				for created := 0; created <= requested; created++ {
					status := compute.DeriveStatus(requested, created)

					Expect(status == compute.StatusSuccess).To(Equal(created == requested))
					Expect(status == compute.StatusFailure).To(Equal(created == 0))
					Expect(status == compute.StatusPartialSuccess).To(Equal(created > 0 && created < requested))
				}
			}
		})

		It("uses the wire values of the API", func() {
			Expect(string(compute.StatusSuccess)).To(Equal("Success"))
			Expect(string(compute.StatusPartialSuccess)).To(Equal("Partial Success"))
			Expect(string(compute.StatusFailure)).To(Equal("Failure"))
		})
	})

	Describe("NewProvisionOutcome", func() {
		var template compute.InstanceTemplate

		BeforeEach(func() {
			template = compute.InstanceTemplate{
				CloudProvider: "AWS",
				ImageID:       "ami-123",
				LocationID:    "us-east-1a",
				HardwareID:    "t3.micro",
				OS64Bit:       true,
				SecurityGroup: "web",
				KeyPair:       "ops",
				GroupName:     "web",
				InstanceCount: 3,
			}
		})

		It("counts the created instances", func() {
			outcome := compute.NewProvisionOutcome(template, []compute.InstanceRecord{{ID: "i-1"}, {ID: "i-2"}})

			Expect(outcome.RequestedCount).To(Equal(3))
			Expect(outcome.Count).To(Equal(2))
			Expect(outcome.Status).To(Equal(compute.StatusPartialSuccess))
			Expect(outcome.Template).To(Equal(template))
		})

		It("reports failure with an empty instance list when nothing was created", func() {
			outcome := compute.NewProvisionOutcome(template, nil)

			Expect(outcome.Instances).NotTo(BeNil())
			Expect(outcome.Instances).To(BeEmpty())
			Expect(outcome.Status).To(Equal(compute.StatusFailure))
		})
	})
})
