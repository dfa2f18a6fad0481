package kube

import (
	"context"
	"errors"
	"sort"
	"testing"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"

	"github.com/aryankumar/parex/pkg/parex"
	"github.com/aryankumar/parex/pkg/search"
)

func createTestNamespace(name string) *corev1.Namespace {
	return &corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: name}}
}

func createTestPod(name, namespace string, labels map[string]string) *corev1.Pod {
	return &corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace, Labels: labels}}
}

func createTestService(name, namespace string) *corev1.Service {
	return &corev1.Service{ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace}}
}

func newTestClient() *fake.Clientset {
	return fake.NewSimpleClientset(
		createTestNamespace("default"),
		createTestNamespace("kube-system"),
		createTestPod("nginx-1", "default", map[string]string{"app": "nginx"}),
		createTestPod("nginx-2", "default", map[string]string{"app": "nginx"}),
		createTestPod("redis-0", "default", map[string]string{"app": "redis"}),
		createTestPod("coredns-abc", "kube-system", map[string]string{"k8s-app": "kube-dns"}),
		createTestService("nginx", "default"),
		createTestService("kube-dns", "kube-system"),
	)
}

func drain(t *testing.T, src *Source, maxDepth int) ([]parex.Item, []error) {
	t.Helper()

	ctx := context.Background()
	it, err := src.Walk(ctx, parex.WalkConfig{Threads: 1, MaxDepth: maxDepth})
	if err != nil {
		t.Fatalf("unexpected walk error: %v", err)
	}
	defer it.Stop()

	var items []parex.Item
	var errs []error
	for {
		item, err := it.Next(ctx)
		if errors.Is(err, parex.ErrIteratorDone) {
			return items, errs
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		items = append(items, item)
	}
}

func countKinds(items []parex.Item) map[parex.Kind]int {
	counts := make(map[parex.Kind]int)
	for _, item := range items {
		counts[item.Kind]++
	}
	return counts
}

func TestSource_Walk(t *testing.T) {
	tests := []struct {
		name       string
		opts       []Option
		maxDepth   int
		containers int
		primary    int
		other      int
	}{
		{name: "everything", maxDepth: parex.NoMaxDepth, containers: 2, primary: 4, other: 2},
		{name: "namespaces only", maxDepth: 0, containers: 2},
		{name: "one namespace", opts: []Option{WithNamespaces("kube-system")}, maxDepth: parex.NoMaxDepth, containers: 1, primary: 1, other: 1},
		{name: "label selector", opts: []Option{WithLabelSelector("app=nginx")}, maxDepth: parex.NoMaxDepth, containers: 2, primary: 2},
		{name: "without services", opts: []Option{WithoutServices()}, maxDepth: 1, containers: 2, primary: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, errs := drain(t, New(newTestClient(), tt.opts...), tt.maxDepth)
			if len(errs) != 0 {
				t.Fatalf("unexpected failures: %v", errs)
			}

			counts := countKinds(items)
			if counts[parex.KindContainer] != tt.containers {
				t.Errorf("expected %d namespaces, got %d", tt.containers, counts[parex.KindContainer])
			}
			if counts[parex.KindPrimary] != tt.primary {
				t.Errorf("expected %d pods, got %d", tt.primary, counts[parex.KindPrimary])
			}
			if counts[parex.KindOther] != tt.other {
				t.Errorf("expected %d services, got %d", tt.other, counts[parex.KindOther])
			}
		})
	}
}

func TestSource_ItemShape(t *testing.T) {
	items, _ := drain(t, New(newTestClient(), WithNamespaces("kube-system")), parex.NoMaxDepth)

	byPath := make(map[string]parex.Item)
	for _, item := range items {
		byPath[item.Path] = item
	}

	ns, ok := byPath["kube-system"]
	if !ok || ns.Depth != 0 || ns.Kind != parex.KindContainer {
		t.Errorf("unexpected namespace item %+v", ns)
	}
	if _, ok := ns.Metadata.(*corev1.Namespace); !ok {
		t.Errorf("expected namespace metadata, got %T", ns.Metadata)
	}

	pod, ok := byPath["kube-system/coredns-abc"]
	if !ok || pod.Depth != 1 || pod.Name != "coredns-abc" || pod.Kind != parex.KindPrimary {
		t.Errorf("unexpected pod item %+v", pod)
	}
	if p, ok := pod.Metadata.(*corev1.Pod); !ok || p.Labels["k8s-app"] != "kube-dns" {
		t.Errorf("expected pod metadata, got %T", pod.Metadata)
	}

	svc, ok := byPath["kube-system/kube-dns"]
	if !ok || svc.Kind != parex.KindOther {
		t.Errorf("unexpected service item %+v", svc)
	}
}

func TestSource_Forbidden(t *testing.T) {
	client := newTestClient()
	client.PrependReactor("list", "pods", func(action k8stesting.Action) (bool, runtime.Object, error) {
		if action.GetNamespace() == "kube-system" {
			return true, nil, apierrors.NewForbidden(schema.GroupResource{Resource: "pods"}, "", errors.New("rbac denied"))
		}
		return false, nil, nil
	})

	items, errs := drain(t, New(client), parex.NoMaxDepth)

	if len(errs) != 1 {
		t.Fatalf("expected 1 failure, got %v", errs)
	}
	if !errors.Is(errs[0], parex.ErrPermissionDenied) {
		t.Errorf("expected permission denied, got %v", errs[0])
	}
	if !parex.IsRecoverable(errs[0]) {
		t.Error("forbidden must be recoverable")
	}
	if p, _ := parex.PathOf(errs[0]); p != "kube-system/pods" {
		t.Errorf("expected failure path kube-system/pods, got %q", p)
	}

	// default namespace pods are unaffected
	if got := countKinds(items)[parex.KindPrimary]; got != 3 {
		t.Errorf("expected 3 pods, got %d", got)
	}
}

func TestSource_MissingNamespace(t *testing.T) {
	items, errs := drain(t, New(newTestClient(), WithNamespaces("ghost", "default")), parex.NoMaxDepth)

	if len(errs) != 1 || !errors.Is(errs[0], parex.ErrNotFound) {
		t.Fatalf("expected one not-found failure, got %v", errs)
	}
	if len(items) != 5 {
		t.Errorf("expected default namespace with 3 pods and 1 service, got %d items", len(items))
	}
}

func TestSource_OtherAPIError(t *testing.T) {
	client := newTestClient()
	client.PrependReactor("list", "services", func(action k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, apierrors.NewInternalError(errors.New("etcd unavailable"))
	})

	_, errs := drain(t, New(client), parex.NoMaxDepth)
	if len(errs) != 2 {
		t.Fatalf("expected a failure per namespace, got %v", errs)
	}
	for _, err := range errs {
		if !errors.Is(err, parex.ErrIO) {
			t.Errorf("expected io failure, got %v", err)
		}
	}
}

func TestSource_NamespaceListFails(t *testing.T) {
	client := newTestClient()
	client.PrependReactor("list", "namespaces", func(action k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, apierrors.NewForbidden(schema.GroupResource{Resource: "namespaces"}, "", errors.New("rbac denied"))
	})

	_, err := New(client).Walk(context.Background(), parex.WalkConfig{Threads: 1, MaxDepth: parex.NoMaxDepth})
	if !errors.Is(err, parex.ErrInvalidSource) {
		t.Errorf("expected invalid source, got %v", err)
	}
	if !parex.IsFatal(err) {
		t.Error("failing to list namespaces must be fatal")
	}
}

func TestSource_NilClient(t *testing.T) {
	_, err := New(nil).Walk(context.Background(), parex.WalkConfig{Threads: 1})
	if !errors.Is(err, parex.ErrInvalidSource) {
		t.Errorf("expected invalid source, got %v", err)
	}
}

func TestSource_Search(t *testing.T) {
	result, err := search.New().
		Source(New(newTestClient())).
		Matching("nginx").
		CollectPaths(true).
		Threads(4).
		Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sort.Strings(result.Paths)
	want := []string{"default/nginx", "default/nginx-1", "default/nginx-2"}
	if len(result.Paths) != len(want) {
		t.Fatalf("expected %v, got %v", want, result.Paths)
	}
	for i := range want {
		if result.Paths[i] != want[i] {
			t.Errorf("expected %s, got %s", want[i], result.Paths[i])
		}
	}
	if result.Stats.Containers != 2 || result.Stats.Primary != 4 || result.Stats.Other != 2 {
		t.Errorf("unexpected stats %+v", result.Stats)
	}
}
