package aws

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/google/uuid"

	"github.com/dcm-project/compute-provisioner/internal/compute"
)

// GroupTagKey tags every instance launched by CreateNodes with its group.
const GroupTagKey = "compute-provisioner/group"

// EC2API is the subset of the EC2 client used by EC2Backend.
type EC2API interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	DescribeInstanceTypes(ctx context.Context, params *ec2.DescribeInstanceTypesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstanceTypesOutput, error)
	DescribeImages(ctx context.Context, params *ec2.DescribeImagesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeImagesOutput, error)
	DescribeRegions(ctx context.Context, params *ec2.DescribeRegionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error)
	RunInstances(ctx context.Context, params *ec2.RunInstancesInput, optFns ...func(*ec2.Options)) (*ec2.RunInstancesOutput, error)
}

// ClientFactory returns an EC2 client bound to region.
type ClientFactory func(region string) EC2API

// EC2Backend implements compute.Backend against EC2, one client per region.
type EC2Backend struct {
	newClient     ClientFactory
	defaultRegion string
	regions       []string
}

var _ compute.Backend = (*EC2Backend)(nil)

// LoadConfig loads the shared AWS configuration for defaultRegion, optionally
// from a named profile.
func LoadConfig(ctx context.Context, defaultRegion, profile string) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(defaultRegion)}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("error loading AWS config: %w", err)
	}
	return cfg, nil
}

// NewClientFactory builds region-scoped EC2 clients from cfg.
func NewClientFactory(cfg aws.Config) ClientFactory {
	return func(region string) EC2API {
		return ec2.NewFromConfig(cfg, func(o *ec2.Options) {
			o.Region = region
		})
	}
}

// NewEC2Backend creates a backend. When regions is empty, ListAllNodes scans
// every region EC2 reports as enabled for the account.
func NewEC2Backend(newClient ClientFactory, defaultRegion string, regions []string) *EC2Backend {
	return &EC2Backend{
		newClient:     newClient,
		defaultRegion: defaultRegion,
		regions:       regions,
	}
}

func (b *EC2Backend) ListAllNodes(ctx context.Context) ([]compute.Node, error) {
	regions, err := b.scanRegions(ctx)
	if err != nil {
		return nil, err
	}

	var nodes []compute.Node
	for _, region := range regions {
		regionNodes, err := b.describeInstances(ctx, region, nil)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, regionNodes...)
	}
	return nodes, nil
}

// ListNodesInRegion accepts a region ("us-east-1") or an availability zone
// ("us-east-1a").
func (b *EC2Backend) ListNodesInRegion(ctx context.Context, regionID string) ([]compute.Node, error) {
	region, zone := splitLocation(regionID)

	var filters []types.Filter
	if zone != "" {
		filters = append(filters, types.Filter{
			Name:   aws.String("availability-zone"),
			Values: []string{zone},
		})
	}
	return b.describeInstances(ctx, region, filters)
}

func (b *EC2Backend) ListHardwareProfiles(ctx context.Context) ([]compute.Hardware, error) {
	client := b.newClient(b.defaultRegion)
	paginator := ec2.NewDescribeInstanceTypesPaginator(client, &ec2.DescribeInstanceTypesInput{})

	var profiles []compute.Hardware
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error querying EC2 instance types: %w", classify(err))
		}
		for _, it := range page.InstanceTypes {
			name := string(it.InstanceType)
			profiles = append(profiles, compute.Hardware{
				ID:       name,
				Name:     name,
				Type:     compute.ComputeTypeHardware,
				Location: &compute.Location{ID: b.defaultRegion},
			})
		}
	}
	return profiles, nil
}

// ListImages returns the images owned by the account.
func (b *EC2Backend) ListImages(ctx context.Context) ([]compute.Image, error) {
	client := b.newClient(b.defaultRegion)
	out, err := client.DescribeImages(ctx, &ec2.DescribeImagesInput{Owners: []string{"self"}})
	if err != nil {
		return nil, fmt.Errorf("error querying EC2 images: %w", classify(err))
	}

	images := make([]compute.Image, 0, len(out.Images))
	for _, img := range out.Images {
		images = append(images, compute.Image{
			ID:   aws.ToString(img.ImageId),
			Name: aws.ToString(img.Name),
		})
	}
	return images, nil
}

// CreateNodes runs between one and count instances in a single RunInstances
// call, so EC2 may return fewer instances than requested.
func (b *EC2Backend) CreateNodes(ctx context.Context, groupName string, count int, spec compute.NodeSpec) ([]compute.Node, error) {
	if count < 1 || count > math.MaxInt32 {
		return nil, fmt.Errorf("instance count %d is outside 1..%d", count, math.MaxInt32)
	}
	region, zone := splitLocation(spec.LocationID)
	if region == "" {
		region = b.defaultRegion
	}

	input := &ec2.RunInstancesInput{
		ImageId:      aws.String(spec.ImageID),
		InstanceType: types.InstanceType(spec.HardwareID),
		MinCount:     aws.Int32(1),
		MaxCount:     aws.Int32(int32(count)),
		ClientToken:  aws.String(uuid.NewString()),
		TagSpecifications: []types.TagSpecification{{
			ResourceType: types.ResourceTypeInstance,
			Tags: []types.Tag{
				{Key: aws.String("Name"), Value: aws.String(groupName)},
				{Key: aws.String(GroupTagKey), Value: aws.String(groupName)},
			},
		}},
	}
	if zone != "" {
		input.Placement = &types.Placement{AvailabilityZone: aws.String(zone)}
	}
	if spec.KeyPair != "" {
		input.KeyName = aws.String(spec.KeyPair)
	}
	for _, sg := range spec.SecurityGroups {
		if strings.HasPrefix(sg, "sg-") {
			input.SecurityGroupIds = append(input.SecurityGroupIds, sg)
		} else {
			input.SecurityGroups = append(input.SecurityGroups, sg)
		}
	}

	out, err := b.newClient(region).RunInstances(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("error running EC2 instances in %s: %w", region, classify(err))
	}

	nodes := make([]compute.Node, 0, len(out.Instances))
	for _, inst := range out.Instances {
		nodes = append(nodes, toNode(inst, region))
	}
	return nodes, nil
}

func (b *EC2Backend) scanRegions(ctx context.Context) ([]string, error) {
	if len(b.regions) > 0 {
		return b.regions, nil
	}

	out, err := b.newClient(b.defaultRegion).DescribeRegions(ctx, &ec2.DescribeRegionsInput{})
	if err != nil {
		return nil, fmt.Errorf("error querying EC2 regions: %w", classify(err))
	}
	regions := make([]string, 0, len(out.Regions))
	for _, r := range out.Regions {
		if name := aws.ToString(r.RegionName); name != "" {
			regions = append(regions, name)
		}
	}
	return regions, nil
}

func (b *EC2Backend) describeInstances(ctx context.Context, region string, filters []types.Filter) ([]compute.Node, error) {
	client := b.newClient(region)
	paginator := ec2.NewDescribeInstancesPaginator(client, &ec2.DescribeInstancesInput{Filters: filters})

	var nodes []compute.Node
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error querying EC2 instances in %s: %w", region, classify(err))
		}
		for _, reservation := range page.Reservations {
			for _, inst := range reservation.Instances {
				nodes = append(nodes, toNode(inst, region))
			}
		}
	}
	return nodes, nil
}

// regionPrefix matches the region an EC2 location belongs to: the partition
// prefix ("us", "us-gov", "cn", ...), a direction and a number.
var regionPrefix = regexp.MustCompile(`^[a-z]{2}(?:-gov|-iso[a-z]?)?-[a-z]+-\d+`)

// splitLocation separates a zone from its region. Availability, Local and
// Wavelength zones all start with their parent region ("us-east-1a",
// "us-west-2-lax-1a", "us-east-1-wl1-bos-wlz-1"). A region ID yields an empty
// zone; an ID matching no region is used as the region verbatim.
func splitLocation(id string) (region, zone string) {
	if id == "" {
		return "", ""
	}
	region = regionPrefix.FindString(id)
	if region == "" || region == id {
		return id, ""
	}
	return region, id
}
