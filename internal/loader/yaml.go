package loader

import (
	"fmt"
	"os"

	"fabricfwd/internal/domain"

	"gopkg.in/yaml.v3"
)

// FabricYAML represents the fabric file structure
type FabricYAML struct {
	Version string     `yaml:"version"`
	Devices []string   `yaml:"devices"`
	Links   []LinkYAML `yaml:"links"`
	Hosts   []HostYAML `yaml:"hosts"`
}

// LinkYAML represents a cable between two device ports, e.g. a: D1/2, b: D3/1
type LinkYAML struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}

// HostYAML represents a host and the port it is attached to
type HostYAML struct {
	MAC string `yaml:"mac"`
	At  string `yaml:"at"`
}

// LoadFabric loads a fabric from a YAML file
func LoadFabric(path string) (*domain.Fabric, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseFabric(data)
}

// ParseFabric parses and validates a fabric from YAML bytes
func ParseFabric(data []byte) (*domain.Fabric, error) {
	var yamlData FabricYAML
	if err := yaml.Unmarshal(data, &yamlData); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	fabric, err := convertYAMLToFabric(&yamlData)
	if err != nil {
		return nil, err
	}
	if err := fabric.Validate(); err != nil {
		return nil, err
	}
	return fabric, nil
}

func convertYAMLToFabric(y *FabricYAML) (*domain.Fabric, error) {
	fabric := domain.NewFabric()
	fabric.Version = y.Version

	for _, d := range y.Devices {
		fabric.AddDevice(domain.DeviceID(d))
	}

	for i, l := range y.Links {
		a, err := domain.ParseConnectPoint(l.A)
		if err != nil {
			return nil, fmt.Errorf("link %d: %w", i, err)
		}
		b, err := domain.ParseConnectPoint(l.B)
		if err != nil {
			return nil, fmt.Errorf("link %d: %w", i, err)
		}
		fabric.AddCable(a, b)
	}

	for i, h := range y.Hosts {
		mac, err := domain.ParseMAC(h.MAC)
		if err != nil {
			return nil, fmt.Errorf("host %d: %w", i, err)
		}
		at, err := domain.ParseConnectPoint(h.At)
		if err != nil {
			return nil, fmt.Errorf("host %s: %w", mac, err)
		}
		fabric.AddHost(domain.NewHost(mac, at))
	}

	return fabric, nil
}

// ExportYAML exports a fabric to YAML format
func ExportYAML(fabric *domain.Fabric) ([]byte, error) {
	yamlData := &FabricYAML{
		Version: fabric.Version,
		Devices: make([]string, 0, len(fabric.Devices)),
		Links:   make([]LinkYAML, 0, len(fabric.Links)/2),
		Hosts:   make([]HostYAML, 0, len(fabric.Hosts)),
	}

	for _, d := range fabric.Devices {
		yamlData.Devices = append(yamlData.Devices, d.String())
	}

	for _, l := range fabric.Cables() {
		yamlData.Links = append(yamlData.Links, LinkYAML{
			A: l.Src.String(),
			B: l.Dst.String(),
		})
	}

	for _, h := range fabric.Hosts {
		yamlData.Hosts = append(yamlData.Hosts, HostYAML{
			MAC: h.MAC.String(),
			At:  h.Location.String(),
		})
	}

	return yaml.Marshal(yamlData)
}
