package service

import (
	"context"

	"github.com/alexanderramin/pmo/internal/db"
	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/graph"
	"github.com/alexanderramin/pmo/internal/repository"
)

// GraphName is the name every exported unit graph carries.
const GraphName = "pmo"

type graphService struct {
	store    *repository.Store
	observer UseCaseObserver
}

func NewGraphService(conn db.DBTX, observers ...UseCaseObserver) GraphService {
	return &graphService{store: repository.NewStore(conn), observer: useCaseObserverOrNoop(observers)}
}

// Build walks everything a business unit owns into a graph. Each record is
// visited once through its owner, so the walk is linear in the number of
// records. Edges point from a record to its owner, or for satellite
// records to their effective parent.
func (s *graphService) Build(ctx context.Context, businessUnitID int64) (g *graph.Graph, err error) {
	defer track(ctx, s.observer, "graph.build", map[string]any{"business_unit_id": businessUnitID})(&err)

	bu, err := s.store.BusinessUnits.GetByID(ctx, businessUnitID)
	if err != nil {
		return nil, err
	}
	w := &graphWalk{ctx: ctx, st: s.store, g: graph.New(GraphName)}
	if err := w.node(bu, "", nil); err != nil {
		return nil, err
	}
	if err := w.orgChart(bu); err != nil {
		return nil, err
	}
	if err := w.projects(bu); err != nil {
		return nil, err
	}
	if err := w.businessPlans(bu); err != nil {
		return nil, err
	}
	return w.g, nil
}

type graphWalk struct {
	ctx context.Context
	st  *repository.Store
	g   *graph.Graph
}

// node adds e and, when parent is set, its owner edge.
func (w *graphWalk) node(e domain.Entity, cluster string, parent domain.Entity) error {
	if _, err := w.g.AddNode(e, cluster); err != nil {
		return err
	}
	if parent == nil {
		return nil
	}
	return w.g.AddEdge(domain.NodeKey(e), domain.NodeKey(parent), graph.EdgeOwner)
}

// attach adds a satellite record under its effective parent, falling back
// to the project when that parent is not part of this project's tree.
func (w *graphWalk) attach(e domain.Entity, p *domain.Project, parent domain.Ref) error {
	if _, err := w.g.AddNode(e, graph.ClusterProjects); err != nil {
		return err
	}
	to := parent.NodeKey()
	if _, ok := w.g.Node(to); !ok {
		to = domain.NodeKey(p)
	}
	return w.g.AddEdge(domain.NodeKey(e), to, graph.EdgeOwner)
}

func (w *graphWalk) orgChart(bu *domain.BusinessUnit) error {
	positions, err := w.st.Positions.ListByBusinessUnit(w.ctx, bu.ID)
	if err != nil {
		return err
	}
	// Add every node before any edge: a parent may be listed after its child.
	for _, p := range positions {
		n, err := w.g.AddNode(p, graph.ClusterOrgChart)
		if err != nil {
			return err
		}
		n.Manager = bu.ManagerID != nil && *bu.ManagerID == p.ID
	}
	unitKey := domain.NodeKey(bu)
	for _, p := range positions {
		to := unitKey
		if p.ParentID != nil {
			if _, ok := w.g.Node(domain.KindPosition.NodeKey(*p.ParentID)); ok {
				to = domain.KindPosition.NodeKey(*p.ParentID)
			}
		}
		if err := w.g.AddEdge(domain.NodeKey(p), to, graph.EdgeOwner); err != nil {
			return err
		}
		if n, _ := w.g.Node(domain.NodeKey(p)); n.Manager && to != unitKey {
			if err := w.g.AddEdge(domain.NodeKey(p), unitKey, graph.EdgeManages); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *graphWalk) projects(bu *domain.BusinessUnit) error {
	projects, err := w.st.Projects.List(w.ctx, &bu.ID)
	if err != nil {
		return err
	}
	for _, p := range projects {
		if err := w.node(p, "", bu); err != nil {
			return err
		}
	}
	for _, p := range projects {
		if err := w.workBreakdown(p); err != nil {
			return err
		}
		if err := w.registers(p); err != nil {
			return err
		}
		if err := w.satellites(p); err != nil {
			return err
		}
	}
	return nil
}

func (w *graphWalk) workBreakdown(p *domain.Project) error {
	accounts, err := w.st.WorkBreakdown.ListControlAccounts(w.ctx, p.ID)
	if err != nil {
		return err
	}
	for _, ca := range accounts {
		if err := w.node(ca, graph.ClusterProjects, p); err != nil {
			return err
		}
		packages, err := w.st.WorkBreakdown.ListWorkPackages(w.ctx, ca.ID)
		if err != nil {
			return err
		}
		for _, wp := range packages {
			if err := w.node(wp, graph.ClusterProjects, ca); err != nil {
				return err
			}
			tasks, err := w.st.WorkBreakdown.ListTasks(w.ctx, wp.ID)
			if err != nil {
				return err
			}
			for _, t := range tasks {
				if err := w.node(t, graph.ClusterProjects, wp); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (w *graphWalk) registers(p *domain.Project) error {
	var owned []domain.Entity
	risks, err := w.st.Registers.ListRisks(w.ctx, p.ID)
	if err != nil {
		return err
	}
	for _, r := range risks {
		owned = append(owned, r)
	}
	contracts, err := w.st.Registers.ListContracts(w.ctx, p.ID)
	if err != nil {
		return err
	}
	for _, c := range contracts {
		owned = append(owned, c)
	}
	milestones, err := w.st.Registers.ListMilestones(w.ctx, p.ID)
	if err != nil {
		return err
	}
	for _, m := range milestones {
		owned = append(owned, m)
	}
	budgets, err := w.st.Registers.ListBudgets(w.ctx, p.ID)
	if err != nil {
		return err
	}
	for _, b := range budgets {
		owned = append(owned, b)
	}
	expenses, err := w.st.Registers.ListExpenses(w.ctx, p.ID)
	if err != nil {
		return err
	}
	for _, e := range expenses {
		owned = append(owned, e)
	}
	history, err := w.st.Registers.ListStatusHistory(w.ctx, p.ID)
	if err != nil {
		return err
	}
	for _, h := range history {
		owned = append(owned, h)
	}

	for _, e := range owned {
		if err := w.node(e, graph.ClusterProjects, p); err != nil {
			return err
		}
	}
	return nil
}

func (w *graphWalk) satellites(p *domain.Project) error {
	assignments, err := w.st.Assignments.ListByProject(w.ctx, p.ID)
	if err != nil {
		return err
	}
	for _, a := range assignments {
		if err := w.attach(a, p, a.EffectiveParent()); err != nil {
			return err
		}
	}
	issues, err := w.st.Issues.ListByProject(w.ctx, p.ID)
	if err != nil {
		return err
	}
	for _, i := range issues {
		if err := w.attach(i, p, i.EffectiveParent()); err != nil {
			return err
		}
	}
	changes, err := w.st.ChangeRequests.ListByProject(w.ctx, p.ID)
	if err != nil {
		return err
	}
	for _, c := range changes {
		if err := w.attach(c, p, c.EffectiveParent()); err != nil {
			return err
		}
	}
	return nil
}

func (w *graphWalk) businessPlans(bu *domain.BusinessUnit) error {
	plans, err := w.st.Plans.ListPlans(w.ctx, &bu.ID)
	if err != nil {
		return err
	}
	for _, bp := range plans {
		if err := w.node(bp, "", bu); err != nil {
			return err
		}
	}
	for _, bp := range plans {
		objectives, err := w.st.Plans.ListObjectives(w.ctx, bp.ID)
		if err != nil {
			return err
		}
		for _, o := range objectives {
			if err := w.node(o, graph.ClusterBusinessPlans, bp); err != nil {
				return err
			}
			keyResults, err := w.st.Plans.ListKeyResults(w.ctx, o.ID)
			if err != nil {
				return err
			}
			for _, k := range keyResults {
				if err := w.node(k, graph.ClusterBusinessPlans, o); err != nil {
					return err
				}
				initiatives, err := w.st.Plans.ListInitiatives(w.ctx, k.ID)
				if err != nil {
					return err
				}
				for _, ini := range initiatives {
					if err := w.node(ini, graph.ClusterBusinessPlans, k); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}
