package bot

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/fekuna/omnipos-stockbot/internal/cache"
	catdto "github.com/fekuna/omnipos-stockbot/internal/category/dto"
	catrepo "github.com/fekuna/omnipos-stockbot/internal/category/repository"
	catuc "github.com/fekuna/omnipos-stockbot/internal/category/usecase"
	"github.com/fekuna/omnipos-stockbot/internal/database/dbtest"
	"github.com/fekuna/omnipos-stockbot/internal/i18n"
	"github.com/fekuna/omnipos-stockbot/internal/inventory/notifier"
	"github.com/fekuna/omnipos-stockbot/internal/inventory/report"
	invuc "github.com/fekuna/omnipos-stockbot/internal/inventory/usecase"
	"github.com/fekuna/omnipos-stockbot/internal/logger"
	"github.com/fekuna/omnipos-stockbot/internal/model"
	proddto "github.com/fekuna/omnipos-stockbot/internal/product/dto"
	prodrepo "github.com/fekuna/omnipos-stockbot/internal/product/repository"
	produc "github.com/fekuna/omnipos-stockbot/internal/product/usecase"
	subrepo "github.com/fekuna/omnipos-stockbot/internal/subscriber/repository"
	subuc "github.com/fekuna/omnipos-stockbot/internal/subscriber/usecase"
	taskrepo "github.com/fekuna/omnipos-stockbot/internal/task/repository"
	taskuc "github.com/fekuna/omnipos-stockbot/internal/task/usecase"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu      sync.Mutex
	sent    []tgbotapi.Chattable
	sendErr map[int64]error
	updates chan tgbotapi.Update
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{sendErr: map[int64]error{}, updates: make(chan tgbotapi.Update)}
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		if err := f.sendErr[m.ChatID]; err != nil {
			return tgbotapi.Message{}, err
		}
	}
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeAPI) StopReceivingUpdates() {}

// textsTo returns the text of every new or edited message for chatID.
func (f *fakeAPI) textsTo(chatID int64) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.sent {
		switch m := c.(type) {
		case tgbotapi.MessageConfig:
			if m.ChatID == chatID {
				out = append(out, m.Text)
			}
		case tgbotapi.EditMessageTextConfig:
			if m.ChatID == chatID {
				out = append(out, m.Text)
			}
		}
	}
	return out
}

func (f *fakeAPI) last(chatID int64) string {
	texts := f.textsTo(chatID)
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

func (f *fakeAPI) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = nil
}

type harness struct {
	bot *Bot
	api *fakeAPI
	uc  UseCases
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := dbtest.New(t)
	log := logger.NewNop()
	msg, err := i18n.New("en")
	require.NoError(t, err)

	cats := catrepo.NewSQLRepository(db)
	products := prodrepo.NewSQLRepository(db)
	subs := subrepo.NewSQLRepository(db)

	api := newFakeAPI()
	n := notifier.New(products, cats, subs, NewSender(api), msg, log)
	agg := report.NewAggregator(products, msg)

	uc := UseCases{
		Categories:  catuc.NewCategoryUseCase(cats, log),
		Products:    produc.NewProductUseCase(products, log),
		Inventory:   invuc.NewInventoryUseCase(products, n, agg, cache.NewLocalLocker(), invuc.DefaultLockOptions, log),
		Subscribers: subuc.NewSubscriberUseCase(subs, log),
		Tasks:       taskuc.NewTaskUseCase(taskrepo.NewSQLRepository(db), log),
	}
	return &harness{bot: New(api, uc, msg, 0, log), api: api, uc: uc}
}

func (h *harness) command(chatID int64, cmd string) {
	text := "/" + cmd
	h.bot.HandleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: chatID},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}},
	}})
}

func (h *harness) text(chatID int64, text string) {
	h.bot.HandleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
	}})
}

func (h *harness) click(chatID int64, data string) {
	h.bot.HandleUpdate(context.Background(), tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "q",
		Data:    data,
		Message: &tgbotapi.Message{MessageID: 7, Chat: &tgbotapi.Chat{ID: chatID}},
	}})
}

func TestStart_SubscribesAndShowsMenu(t *testing.T) {
	h := newHarness(t)

	h.command(1, "start")

	ok, err := h.uc.Subscribers.IsSubscribed(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Bot menu ⬇️", h.api.last(1))

	h.text(1, "🔕 Unsubscribe")
	ok, _ = h.uc.Subscribers.IsSubscribed(context.Background(), 1)
	assert.False(t, ok)
	assert.Equal(t, "🔕 You are unsubscribed from notifications.", h.api.last(1))

	h.command(1, "subscribe")
	ok, _ = h.uc.Subscribers.IsSubscribed(context.Background(), 1)
	assert.True(t, ok)
}

func TestAddCategoryConversation(t *testing.T) {
	h := newHarness(t)

	h.click(1, "cat:add")
	assert.Equal(t, "Enter the new category name:", h.api.last(1))

	h.text(1, "   ")
	assert.Equal(t, "The name cannot be empty. Try again:", h.api.last(1))

	h.text(1, "Dairy")
	texts := h.api.textsTo(1)
	assert.Contains(t, texts, "✅ Category added: Dairy")
	assert.Equal(t, "Categories:", h.api.last(1))

	h.click(1, "cat:add")
	h.text(1, "Dairy")
	assert.Equal(t, "Such a category already exists. Enter another name:", h.api.last(1))

	h.text(1, "Fruit")
	cats, err := h.uc.Categories.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 2)
}

func TestAddProductConversation(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	cat := mustCategory(t, h, "Dairy")

	h.click(1, cbID(scopeProduct, "add", cat.ID))
	h.text(1, "Milk")
	assert.Equal(t, "Enter the quantity (e.g. 2 or 2.5):", h.api.last(1))

	h.text(1, "-3")
	assert.Equal(t, "The quantity must be a number, e.g. 3 or 1.5. Try again:", h.api.last(1))

	h.text(1, "10")
	h.text(1, "abc")
	assert.Equal(t, "The limit must be a number, '-' or 0. Try again:", h.api.last(1))

	h.text(1, "5")
	assert.Contains(t, h.api.textsTo(1), "✅ Product added: Milk — 10")
	assert.Equal(t, "📦 Category: Dairy", h.api.last(1))

	products, err := h.uc.Products.ListProducts(ctx, cat.ID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.NotNil(t, products[0].Limit)
	assert.Equal(t, 5.0, *products[0].Limit)

	// Same name again goes back to the name step.
	h.click(1, cbID(scopeProduct, "add", cat.ID))
	h.text(1, "Milk")
	h.text(1, "1")
	h.text(1, "-")
	assert.Equal(t, "Such a product already exists in this category. Enter another name:", h.api.last(1))
	h.text(1, "Kefir")
	h.text(1, "1")
	h.text(1, "-")
	assert.Contains(t, h.api.textsTo(1), "✅ Product added: Kefir — 1")
}

func TestQuantityEdit_AlertsSubscribersOnce(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.command(100, "start")
	h.command(200, "start")
	cat := mustCategory(t, h, "Dairy")
	p := mustProduct(t, h, cat.ID, "Milk", 10, 5)
	h.api.reset()

	alert := "⚠️ NEEDS REORDERING\n\nCategory: Dairy\nProduct: Milk\nQuantity: 4\nLimit: 5"

	h.click(1, cbID(scopeProduct, "qty", p.ID))
	h.text(1, "4")
	assert.Contains(t, h.api.textsTo(1), "✅ Quantity updated: 4")
	assert.Equal(t, []string{alert}, h.api.textsTo(100))
	assert.Equal(t, []string{alert}, h.api.textsTo(200))

	h.click(1, cbID(scopeProduct, "qty", p.ID))
	h.text(1, "4")
	assert.Len(t, h.api.textsTo(100), 1, "still alerted, no repeat")

	h.click(1, cbID(scopeProduct, "qty", p.ID))
	h.text(1, "6")
	assert.Len(t, h.api.textsTo(100), 1, "recovery is silent")

	got, err := h.uc.Products.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.BelowLimit)
}

func TestLimitEdit_ClearsLimit(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	cat := mustCategory(t, h, "Dairy")
	p := mustProduct(t, h, cat.ID, "Milk", 10, 5)

	h.click(1, cbID(scopeProduct, "limit", p.ID))
	h.text(1, "0")
	assert.Contains(t, h.api.textsTo(1), "✅ Limit removed.")

	got, err := h.uc.Products.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Limit)
}

func TestUnreachableSubscriberIsDropped(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.command(100, "start")
	h.command(200, "start")
	h.api.sendErr[200] = &tgbotapi.Error{Code: 403, Message: "Forbidden: bot was blocked by the user"}
	cat := mustCategory(t, h, "Dairy")
	p := mustProduct(t, h, cat.ID, "Milk", 10, 5)

	h.click(1, cbID(scopeProduct, "qty", p.ID))
	h.text(1, "1")

	ok, err := h.uc.Subscribers.IsSubscribed(ctx, 200)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, _ = h.uc.Subscribers.IsSubscribed(ctx, 100)
	assert.True(t, ok)
}

func TestCancelReturnsToCategory(t *testing.T) {
	h := newHarness(t)
	cat := mustCategory(t, h, "Dairy")
	p := mustProduct(t, h, cat.ID, "Milk", 10, 5)

	h.click(1, cbID(scopeProduct, "qty", p.ID))
	h.click(1, cb(scopeProduct, "cancel"))
	assert.Contains(t, h.api.textsTo(1), "Cancelled ✅")
	assert.Equal(t, "📦 Category: Dairy", h.api.last(1))

	// Typed text after cancel is not taken as a quantity.
	h.text(1, "1")
	assert.Equal(t, "Unknown command. Use the menu below.", h.api.last(1))
	got, err := h.uc.Products.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.Quantity)
}

func TestDeleteCategoryCascades(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	cat := mustCategory(t, h, "Dairy")
	p := mustProduct(t, h, cat.ID, "Milk", 10, 5)

	h.click(1, cbID(scopeCategory, "del", cat.ID))
	assert.Equal(t, "Really delete category «Dairy» and all its products?", h.api.last(1))

	h.click(1, cbID(scopeCategory, "del_yes", cat.ID))
	assert.Contains(t, h.api.textsTo(1), "🗑️ Category deleted.")

	_, err := h.uc.Products.GetProduct(ctx, p.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	h.click(1, cbID(scopeProduct, "open", p.ID))
	assert.Equal(t, "Product not found (maybe deleted).", h.api.last(1))
}

func TestReorderList(t *testing.T) {
	h := newHarness(t)

	h.text(1, "📝 Reorder")
	assert.Equal(t, "✅ Nothing to reorder.", h.api.last(1))

	cat := mustCategory(t, h, "Dairy")
	mustProduct(t, h, cat.ID, "Milk", 4, 5)
	h.command(1, "reorder")
	assert.Equal(t, "📝 Reorder list:\n\n📦 Dairy:\n • Milk — 4 (limit 5)", h.api.last(1))
}

func TestTaskFlow(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	h.text(1, "📝 Task list")
	assert.Equal(t, "Processes:", h.api.last(1))

	h.click(1, cbID(scopeTaskProcess, "add", int64(model.ProcessHot)))
	h.text(1, "  ")
	assert.Equal(t, "The task text is required. Try again:", h.api.last(1))
	h.text(1, "Clean the grill")
	assert.Contains(t, h.api.textsTo(1), "✅ Task added")
	assert.Equal(t, "Hot process:", h.api.last(1))

	tasks, err := h.uc.Tasks.ListOpenTasks(ctx, model.ProcessHot)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, int64(1), tasks[0].UserID)

	h.click(1, cbID(scopeTask, "edit", tasks[0].ID))
	h.text(1, "Clean the grill twice")
	h.click(1, cbID(scopeTask, "open", tasks[0].ID))
	assert.Equal(t, "Hot process\n\nClean the grill twice", h.api.last(1))

	h.click(1, cbID(scopeTask, "done", tasks[0].ID))
	assert.Contains(t, h.api.textsTo(1), "✅ Task done!")
	assert.True(t, strings.HasPrefix(h.api.last(1), "Hot process\n\nNo open tasks."))
}

func TestMalformedCallbackIsIgnored(t *testing.T) {
	h := newHarness(t)
	h.click(1, "cat:open:abc")
	h.click(1, "weird")
	assert.Empty(t, h.api.textsTo(1))
}

func TestRun_StopsOnCancel(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.bot.Run(ctx)
		close(done)
	}()

	h.api.updates <- tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: 5},
		Text:     "/start",
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}},
	}}
	cancel()
	<-done

	ok, err := h.uc.Subscribers.IsSubscribed(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, ok, "in-flight updates finish before Run returns")
}

func mustCategory(t *testing.T, h *harness, name string) *model.Category {
	t.Helper()
	c, err := h.uc.Categories.CreateCategory(context.Background(), &catdto.CreateCategoryInput{Name: name})
	require.NoError(t, err)
	return c
}

func mustProduct(t *testing.T, h *harness, catID int64, name string, qty, limit float64) *model.Product {
	t.Helper()
	p, err := h.uc.Products.CreateProduct(context.Background(), &proddto.CreateProductInput{
		CategoryID: catID,
		Name:       name,
		Quantity:   qty,
		Limit:      &limit,
	})
	require.NoError(t, err)
	return p
}
