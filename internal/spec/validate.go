package spec

import "fmt"

// Violation is one violated specification invariant.
type Violation struct {
	Invariant string `json:"invariant"`
	TaskID    string `json:"task_id,omitempty"`
	Message   string `json:"message"`
}

func (v Violation) String() string {
	if v.TaskID == "" {
		return fmt.Sprintf("%s: %s", v.Invariant, v.Message)
	}
	return fmt.Sprintf("%s (task %s): %s", v.Invariant, v.TaskID, v.Message)
}

// Validate checks a candidate consensus specification against the model
// invariants: non-empty target paths and verification strings, unique task
// ids, dependencies that resolve within the task list, and an acyclic
// dependency graph. It is pure and safe to call repeatedly; a valid
// specification always yields an empty list.
func Validate(s ProjectSpec) []Violation {
	var out []Violation

	if s.ProjectName == "" {
		out = append(out, Violation{Invariant: "project_name", Message: "project name must not be empty"})
	}
	if len(s.Tasks) == 0 {
		out = append(out, Violation{Invariant: "tasks", Message: "task list must not be empty"})
	}

	ids := make(map[string]struct{}, len(s.Tasks))
	for _, t := range s.Tasks {
		if t.ID == "" {
			out = append(out, Violation{Invariant: "task_id", Message: "task id must not be empty"})
			continue
		}
		if _, dup := ids[t.ID]; dup {
			out = append(out, Violation{Invariant: "task_id", TaskID: t.ID, Message: "duplicate task id"})
			continue
		}
		ids[t.ID] = struct{}{}
	}

	for _, t := range s.Tasks {
		if t.TargetPath == "" {
			out = append(out, Violation{Invariant: "target_path", TaskID: t.ID, Message: "task must declare a physical target path"})
		}
		if t.Verification == "" {
			out = append(out, Violation{Invariant: "verification", TaskID: t.ID, Message: "task must declare a verification step"})
		}
		for _, dep := range t.Dependencies {
			if _, ok := ids[dep]; !ok {
				out = append(out, Violation{Invariant: "dependency", TaskID: t.ID, Message: fmt.Sprintf("dependency %q does not resolve to a task id", dep)})
			}
		}
	}

	out = append(out, checkAcyclic(s.Tasks, ids)...)
	return out
}

// checkAcyclic runs Kahn's algorithm over the dependency graph and flags the
// tasks left unordered when a cycle exists.
func checkAcyclic(tasks []Task, ids map[string]struct{}) []Violation {
	indegree := make(map[string]int, len(tasks))
	dependents := make(map[string][]string, len(tasks))
	for _, t := range tasks {
		if _, ok := indegree[t.ID]; !ok {
			indegree[t.ID] = 0
		}
		for _, dep := range t.Dependencies {
			if _, ok := ids[dep]; !ok {
				continue // unresolved deps are reported separately
			}
			indegree[t.ID]++
			dependents[dep] = append(dependents[dep], t.ID)
		}
	}

	queue := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if indegree[t.ID] == 0 {
			queue = append(queue, t.ID)
		}
	}

	ordered := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		ordered++
		for _, next := range dependents[id] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if ordered == len(indegree) {
		return nil
	}

	var out []Violation
	for _, t := range tasks {
		if indegree[t.ID] > 0 {
			out = append(out, Violation{Invariant: "cycle", TaskID: t.ID, Message: "task participates in a dependency cycle"})
		}
	}
	return out
}
