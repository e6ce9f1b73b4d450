package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/drinklog/config"
	"github.com/d60-Lab/drinklog/internal/credential"
	"github.com/d60-Lab/drinklog/internal/model"
	"github.com/d60-Lab/drinklog/internal/policy"
	"github.com/d60-Lab/drinklog/internal/repository"
	"github.com/d60-Lab/drinklog/internal/service"
	"github.com/d60-Lab/drinklog/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	store := repository.NewStore(db)
	if err := store.AutoMigrate(); err != nil {
		panic(err)
	}

	// 压测只关心关系链写入，bcrypt 用最小代价
	hasher := credential.NewHasher(bcrypt.MinCost)
	emails := policy.NewDomainSuffixPolicy(cfg.Policy.EmailSuffixes...)
	userSvc := service.NewUserService(store, hasher, emails)
	relSvc := service.NewRelationshipService(store)
	postSvc := service.NewPostService(store)

	ctx := context.Background()

	N := envInt("N", 2000)
	CONC := envInt("CONC", 1)
	POSTS := envInt("POSTS", 50)
	suffix := cfg.Policy.EmailSuffixes[0]
	run := strconv.FormatInt(time.Now().UnixNano(), 36)

	register := func(name string) *model.User {
		return must(userSvc.Register(ctx, service.RegisterInput{
			Username: name,
			Password: "Bench1234",
			Email:    name + suffix,
			Weight:   75,
			Gender:   "other",
		}))
	}

	// u0 是大V，其余用户都关注 u0
	seedStart := time.Now()
	celeb := register("celeb-" + run)
	users := make([]*model.User, N)
	for i := range users {
		users[i] = register(fmt.Sprintf("u%d-%s", i, run))
	}
	seedDur := time.Since(seedStart)

	for i := 0; i < POSTS; i++ {
		_ = must(postSvc.Create(ctx, celeb.ID, service.CreatePostInput{
			DrinkName: "bench", Volume: 33, AlcoholPercentage: 5.3,
		}))
	}

	followRecs := measure(N, CONC, func(i int) error {
		return relSvc.Follow(ctx, users[i].ID, celeb.ID)
	})
	// 重复关注走幂等路径
	refollowRecs := measure(N, CONC, func(i int) error {
		return relSvc.Follow(ctx, users[i].ID, celeb.ID)
	})
	feedRecs := measure(N, CONC, func(i int) error {
		feed, err := postSvc.Feed(ctx, users[i].ID)
		if err == nil && len(feed) != POSTS {
			err = fmt.Errorf("feed of %s has %d posts, want %d", users[i].ID, len(feed), POSTS)
		}
		return err
	})

	q0 := time.Now()
	followers, err := relSvc.ListFollowers(ctx, celeb.ID)
	if err != nil {
		panic(err)
	}
	followersDur := time.Since(q0)

	fmt.Printf("N=%d, CONC=%d, POSTS=%d, driver=%s\n", N, CONC, POSTS, cfg.Database.Driver)
	fmt.Printf("Seed (register %d users): %v\n", N+1, seedDur)
	report("Follow", followRecs)
	report("Follow (idempotent)", refollowRecs)
	report("Feed", feedRecs)
	fmt.Printf("ListFollowers(%d) latency: %v\n", len(followers), followersDur)
}

type result struct {
	total  time.Duration
	recs   []time.Duration
	errors int
}

// measure 用 conc 个 worker 执行 n 次 op，记录每次耗时
func measure(n, conc int, op func(i int) error) result {
	if conc > n {
		conc = n
	}
	jobs := make(chan int, n)
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	var (
		mu  sync.Mutex
		res = result{recs: make([]time.Duration, 0, n)}
		wg  sync.WaitGroup
	)
	t0 := time.Now()
	for w := 0; w < conc; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				st := time.Now()
				err := op(i)
				d := time.Since(st)
				mu.Lock()
				res.recs = append(res.recs, d)
				if err != nil {
					res.errors++
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	res.total = time.Since(t0)
	return res
}

func report(name string, r result) {
	n := len(r.recs)
	if n == 0 {
		return
	}
	fmt.Printf("%s total: %v, per op: %v, p50: %v, p95: %v, p99: %v, errors: %d\n",
		name, r.total, r.total/time.Duration(n), pct(r.recs, 0.50), pct(r.recs, 0.95), pct(r.recs, 0.99), r.errors)
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}
