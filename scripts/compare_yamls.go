package main

import (
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// compares the keys of a dumped default config with config/example_config.yaml
func main() {
	exampleConfigFile, err := os.ReadFile("config/example_config.yaml")
	if err != nil {
		log.Fatal(err)
	}

	newConfigFile, err := os.ReadFile("config/dumped_config.yaml")
	if err != nil {
		log.Fatal(err)
	}

	exampleConfig := make(map[string]interface{})
	if err := yaml.Unmarshal(exampleConfigFile, &exampleConfig); err != nil {
		log.Fatal(err)
	}

	newConfig := make(map[string]interface{})
	if err := yaml.Unmarshal(newConfigFile, &newConfig); err != nil {
		log.Fatal(err)
	}

	missing := missingKeys("", convertToLowercase(newConfig), convertToLowercase(exampleConfig))
	if len(missing) > 0 {
		log.Fatalf("keys missing in config/example_config.yaml: %s", strings.Join(missing, ", "))
	}
}

// missingKeys returns the keys of dumped, nested keys joined by dots, which are not present in example.
func missingKeys(prefix string, dumped, example map[string]interface{}) []string {
	var missing []string

	for key, value := range dumped {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		exampleValue, ok := example[key]
		if !ok {
			missing = append(missing, path)
			continue
		}

		nested, isMap := value.(map[string]interface{})
		exampleNested, exampleIsMap := exampleValue.(map[string]interface{})
		if isMap && exampleIsMap {
			missing = append(missing, missingKeys(path, convertToLowercase(nested), convertToLowercase(exampleNested))...)
		}
	}

	return missing
}

func convertToLowercase(configMap map[string]interface{}) map[string]interface{} {
	lowercase := make(map[string]interface{}, len(configMap))
	for k, v := range configMap {
		lowercase[strings.ToLower(k)] = v
	}
	return lowercase
}
