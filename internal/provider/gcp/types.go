package gcp

import (
	"fmt"
	"strings"
)

// Compute Engine v1 resources, limited to the fields this package reads or
// sends.

type instance struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Zone              string             `json:"zone"`
	MachineType       string             `json:"machineType"`
	Status            string             `json:"status"`
	SelfLink          string             `json:"selfLink"`
	NetworkInterfaces []networkInterface `json:"networkInterfaces"`
	Disks             []attachedDisk     `json:"disks"`
	Labels            map[string]string  `json:"labels,omitempty"`
}

type networkInterface struct {
	Network       string         `json:"network,omitempty"`
	NetworkIP     string         `json:"networkIP,omitempty"`
	AccessConfigs []accessConfig `json:"accessConfigs,omitempty"`
}

type accessConfig struct {
	Type  string `json:"type,omitempty"`
	Name  string `json:"name,omitempty"`
	NatIP string `json:"natIP,omitempty"`
}

type attachedDisk struct {
	Boot             bool            `json:"boot,omitempty"`
	AutoDelete       bool            `json:"autoDelete,omitempty"`
	Licenses         []string        `json:"licenses,omitempty"`
	Architecture     string          `json:"architecture,omitempty"`
	InitializeParams *diskInitParams `json:"initializeParams,omitempty"`
}

type diskInitParams struct {
	SourceImage string `json:"sourceImage"`
}

type instanceList struct {
	Items         []instance `json:"items"`
	NextPageToken string     `json:"nextPageToken"`
}

type instancesScopedList struct {
	Instances []instance `json:"instances"`
}

type aggregatedInstanceList struct {
	Items         map[string]instancesScopedList `json:"items"`
	NextPageToken string                         `json:"nextPageToken"`
}

type machineType struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Zone     string `json:"zone"`
	SelfLink string `json:"selfLink"`
}

type machineTypesScopedList struct {
	MachineTypes []machineType `json:"machineTypes"`
}

type aggregatedMachineTypeList struct {
	Items         map[string]machineTypesScopedList `json:"items"`
	NextPageToken string                            `json:"nextPageToken"`
}

type image struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Family   string `json:"family"`
	SelfLink string `json:"selfLink"`
}

type imageList struct {
	Items         []image `json:"items"`
	NextPageToken string  `json:"nextPageToken"`
}

type metadataItem struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type metadata struct {
	Items []metadataItem `json:"items"`
}

type tags struct {
	Items []string `json:"items"`
}

type instanceProperties struct {
	MachineType       string             `json:"machineType"`
	Disks             []attachedDisk     `json:"disks"`
	NetworkInterfaces []networkInterface `json:"networkInterfaces"`
	Metadata          *metadata          `json:"metadata,omitempty"`
	Labels            map[string]string  `json:"labels,omitempty"`
	Tags              *tags              `json:"tags,omitempty"`
}

type bulkInsertRequest struct {
	Count              int64              `json:"count,string"`
	MinCount           int64              `json:"minCount,string"`
	NamePattern        string             `json:"namePattern"`
	InstanceProperties instanceProperties `json:"instanceProperties"`
}

type operationErrorItem struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type operationError struct {
	Errors []operationErrorItem `json:"errors"`
}

func (e *operationError) String() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, item := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", item.Code, item.Message))
	}
	return strings.Join(msgs, "; ")
}

type operation struct {
	Name   string          `json:"name"`
	Zone   string          `json:"zone"`
	Status string          `json:"status"`
	Error  *operationError `json:"error,omitempty"`
}

// errorResponse is the JSON error body returned by Google APIs.
type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
