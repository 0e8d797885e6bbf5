// Copyright (c) 2024, 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// EnvVarKubeConfig Name of Environment Variable for KUBECONFIG
const EnvVarKubeConfig = "KUBECONFIG"

// EnvVarTestKubeConfig Name of Environment Variable for test KUBECONFIG
const EnvVarTestKubeConfig = "TEST_KUBECONFIG"

const APIServerBurst = 150
const APIServerQPS = 100

// fakeClient is for unit testing
var fakeClient kubernetes.Interface

// SetFakeClient for unit tests
func SetFakeClient(client kubernetes.Interface) {
	fakeClient = client
}

// ClearFakeClient for unit tests
func ClearFakeClient() {
	fakeClient = nil
}

// sanitizePath converts the input path to an absolute path
// and check if the file exists.  If it does not exist, an error
// is returned.
func sanitizePath(path string) (string, error) {
	log.Debugf("Sanitizing %s", path)
	path, err := filepath.Abs(path)
	if err != nil {
		return path, err
	}

	_, err = os.Stat(path)
	if err != nil {
		return path, err
	}

	return path, nil
}

// GetKubeConfigLocation Helper function to obtain the default kubeConfig location
func GetKubeConfigLocation(kubeconfigPath string) (string, error) {
	if kubeconfigPath != "" {
		return sanitizePath(kubeconfigPath)
	}

	if testKubeConfig := os.Getenv(EnvVarTestKubeConfig); len(testKubeConfig) > 0 {
		path, err := sanitizePath(testKubeConfig)
		if err != nil {
			err = fmt.Errorf("Failed to access the kubeconfig set by the environment variable %s: %w", EnvVarTestKubeConfig, err)
		}
		return path, err
	}

	if kubeConfig := os.Getenv(EnvVarKubeConfig); len(kubeConfig) > 0 {
		path, err := sanitizePath(kubeConfig)
		if err != nil {
			err = fmt.Errorf("Failed to access the kubeconfig set by the environment variable %s: %w", EnvVarKubeConfig, err)
		}
		return path, err
	}

	if home := homedir.HomeDir(); home != "" {
		return sanitizePath(filepath.Join(home, ".kube", "config"))
	}

	return "", errors.New("unable to find kubeconfig")
}

// BuildKubeConfig loads the rest config from a kubeconfig file
func BuildKubeConfig(kubeconfig string) (*rest.Config, error) {
	config, err := clientcmd.BuildConfigFromFlags("", kubeconfig)
	if err != nil {
		return nil, err
	}

	setConfigQPSBurst(config)
	return config, nil
}

// GetKubeClient - return a Kubernetes clientset for use with the go-client
func GetKubeClient(kubeconfigPath string) (*rest.Config, kubernetes.Interface, error) {
	if fakeClient != nil {
		return &rest.Config{}, fakeClient, nil
	}

	path, err := GetKubeConfigLocation(kubeconfigPath)
	if err != nil {
		return nil, nil, err
	}

	restConfig, err := BuildKubeConfig(path)
	if err != nil {
		return nil, nil, err
	}

	routeKlogToLogrus()

	cs, err := kubernetes.NewForConfig(restConfig)
	return restConfig, cs, err
}

func setConfigQPSBurst(config *rest.Config) {
	config.Burst = APIServerBurst
	config.QPS = APIServerQPS
}
