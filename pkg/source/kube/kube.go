// Package kube is a parex producer over a Kubernetes cluster.
//
// Namespaces are emitted as containers at depth 0. Below each namespace,
// pods are emitted as primary items and services as other items, both at
// depth 1 with paths of the form "<namespace>/<name>". A max depth of 0
// lists namespaces only. Every item carries its API object as metadata.
//
// API failures are classified per path: forbidden and unauthorized
// responses become permission failures, missing objects become not-found
// failures and anything else becomes an I/O failure. All of them are
// recoverable, so one locked-down namespace does not end the run.
package kube

import (
	"context"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/aryankumar/parex/pkg/parex"
)

// Source walks namespaces, pods and services of one cluster
type Source struct {
	client        kubernetes.Interface
	namespaces    []string
	labelSelector string
	skipServices  bool
}

var _ parex.Producer = (*Source)(nil)

// Option configures a Source
type Option func(*Source)

// WithNamespaces restricts the walk to the named namespaces.
// By default every namespace the client can list is walked.
func WithNamespaces(names ...string) Option {
	return func(s *Source) {
		s.namespaces = append(s.namespaces, names...)
	}
}

// WithLabelSelector filters pods and services by label
func WithLabelSelector(selector string) Option {
	return func(s *Source) {
		s.labelSelector = selector
	}
}

// WithoutServices skips listing services
func WithoutServices() Option {
	return func(s *Source) {
		s.skipServices = true
	}
}

// New creates a source over client
func New(client kubernetes.Interface, opts ...Option) *Source {
	s := &Source{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromKubeconfig creates a source using a kubeconfig path and context.
// Empty values fall back to $KUBECONFIG, ~/.kube/config and the current context.
func NewFromKubeconfig(kubeconfig, contextName string, opts ...Option) (*Source, error) {
	clientset, err := NewKubeconfigLoader(kubeconfig).BuildClientset(contextName)
	if err != nil {
		return nil, parex.InvalidSource(err.Error())
	}
	return New(clientset, opts...), nil
}

// Walk starts a traversal. When no namespaces were configured the
// namespace list is fetched up front, and failing to list it is fatal.
func (s *Source) Walk(ctx context.Context, cfg parex.WalkConfig) (parex.Iterator, error) {
	if s.client == nil {
		return nil, parex.InvalidSource("no kubernetes client")
	}

	it := &iterator{source: s, cfg: cfg}

	if len(s.namespaces) > 0 {
		for _, name := range s.namespaces {
			it.targets = append(it.targets, target{name: name})
		}
		return it, nil
	}

	list, err := s.client.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, &parex.Error{Code: parex.CodeInvalidSource, Detail: "listing namespaces", Err: err}
	}
	for i := range list.Items {
		ns := &list.Items[i]
		it.targets = append(it.targets, target{name: ns.Name, namespace: ns})
	}
	return it, nil
}

// classify maps an API error on path to a recoverable failure
func classify(path string, err error) *parex.Error {
	switch {
	case apierrors.IsForbidden(err), apierrors.IsUnauthorized(err):
		return parex.NewPathError(parex.CodePermissionDenied, path, err)
	case apierrors.IsNotFound(err):
		return parex.NewPathError(parex.CodeNotFound, path, err)
	default:
		return parex.IOError(path, err)
	}
}

func namespaceItem(ns *corev1.Namespace) parex.Item {
	return parex.Item{
		Path:     ns.Name,
		Name:     ns.Name,
		Kind:     parex.KindContainer,
		Depth:    0,
		Metadata: ns,
	}
}

func podItem(pod *corev1.Pod) parex.Item {
	return parex.Item{
		Path:     pod.Namespace + "/" + pod.Name,
		Name:     pod.Name,
		Kind:     parex.KindPrimary,
		Depth:    1,
		Metadata: pod,
	}
}

func serviceItem(svc *corev1.Service) parex.Item {
	return parex.Item{
		Path:     svc.Namespace + "/" + svc.Name,
		Name:     svc.Name,
		Kind:     parex.KindOther,
		Depth:    1,
		Metadata: svc,
	}
}
