package content

// Fixed Turkish content pools. Every line is 8-12 words with no trailing
// punctuation and no emoji; TestPoolLineConstraints enforces this for any
// line added later.

var pools = map[Category][]string{
	CategoryEmotional: {
		"Bazı geceler kalbin sustuğu yerde düşünceler daha yüksek sesle konuşuyor",
		"Kimseye anlatamadığın şeyler en çok geceleri içinde yer ediyor",
		"Herkes uyurken bir başına kalan düşüncelerinle yüzleşmek zorunda kalıyorsun",
		"İyiyim demeyi öğrendik ama kimse nasıl olduğumuzu gerçekten sormuyor",
		"Bazen en kalabalık odada bile kendini bir başına hissediyorsun",
		"Gitmesine izin verdiğin şeyler bazen geceleri geri dönüp buluyor seni",
		"En ağır yük kimseye gösteremediğin o sessiz yorgunluk oluyor",
		"Unutmak istedikçe daha çok hatırlıyorsun işte en zor kısmı bu",
		"Bir mesaj bekleyip telefonu elinden bırakamadığın geceler var ya",
		"İçindeki fırtınayı saklamak dışarıdaki yağmurdan çok daha yorucu bazen",
	},
	CategorySarcastic: {
		"Herkes değişti diyorsun belki de sadece maskeler artık dayanmıyor",
		"Meşgulüm diyenlerin telefonu nedense hep başkalarına cevap vermeye müsait",
		"Ararım demek artık görüşmeyelim demenin kibar hali oldu sanırım",
		"Hayat koçu tavsiyesiyle düzelecek olsaydık çoktan hepimiz mutluyduk herhalde",
		"Kendine iyi bak diyorlar sanki bugüne kadar başkası bakıyormuş gibi",
		"Sabah motivasyon videosu izleyip öğlen her şeyi erteleyen bir nesiliz",
		"Dürüstlük istiyorlar ama duymak istedikleri cevabı söylemediğinde darılıyorlar hemen",
		"Takipten çıkınca fark edecek sananlara kötü bir haberim var",
		"Yoğunluktan görüşemiyoruz ama herkesin hikayesini izlemeye vakti var nedense",
		"Plan yapmayı bırakıp akışına bıraktık akış da bizi unuttu galiba",
	},
	CategoryDeep: {
		"Bazı cevaplar ancak doğru soruyu sormayı bıraktığında gelip seni buluyor",
		"İnsan en çok kaybetmekten korktuğu şeye tutunurken kaybediyor kendini",
		"Zaman geçmiyor aslında biz zamanın içinden sessizce geçip gidiyoruz",
		"Sahip olduklarımız değil vazgeçebildiklerimiz gösteriyor gerçekte kim olduğumuzu",
		"Herkesin bir hikayesi var ama çoğu kimseye anlatılmadan bitiyor",
		"Bir yeri özlemek bazen oradaki halini özlemek anlamına geliyor sadece",
		"Susmayı öğrenmeden konuşmayı öğrenmek insanın en büyük eksiği belki",
		"Kaybolmadan önce nereye ait olduğunu bilmiyorsan bulunman da imkansız",
		"En uzun yolculuk insanın kendi içine yaptığı o sessiz yolculuk",
		"Geçmişi değiştiremezsin ama ona verdiğin anlamı her gün yeniden seçebilirsin",
	},
	CategoryRomantic: {
		"Sesini duyunca düzelen bir günüm varsa sebebi çoktan sensin demektir",
		"Kalabalık bir şehirde gözlerimin hep seni araması tesadüf değil artık",
		"Seninle susmak bile başkalarıyla konuşmaktan daha çok şey anlatıyor bana",
		"Gülüşünü düşünürken yakalanmak günün en güzel kazası oluyor bazen",
		"İyi geceler mesajın gecenin en sakin yerine dokunup geçiyor usulca",
		"Sen anlatırken dinlemeyi unutup yüzüne bakakaldığım anlar oluyor bazen",
		"Uzak olsan da aklımdaki yerin her geçen gün biraz büyüyor",
		"Şarkılar artık hep seni anlatıyor ya da ben öyle duyuyorum",
	},
}

// Caption lines go into the text file next to the reel, never onto the
// video itself.
var captionLines = []string{
	"Gece düşüncelerin en derin olduğu an",
	"Bazen sessizlik en iyi cevap",
	"Her şey geçer izi kalır",
	"Yalnız değil yalnız hisseden var",
	"Gecenin bir yarısı aklına düşen",
	"Bazı şeyler kelimelerle anlatılmaz",
	"İçinde bir şeyler kırıldığında",
	"Gece uzadıkça düşünceler derinleşir",
	"Kimse senin yükünü taşımaz",
	"Bazen en sessiz insanlar en çok acı çeker",
	"Gülümsemek en kolay yalan",
	"İçindeki fırtınayı kimse görmez",
	"Gece olunca her şey daha ağır",
	"Kaybetmek değil alışmak zor",
	"Bazı yaralar görünmez hep kanar",
	"Yorgunluk bazen yürekten gelir",
	"Bazen susmak en iyi cevap",
	"En çok güvendiğin en çok incitir",
	"Gece düşüncelerin seni bulduğu zaman",
}

var hashtagPool = []string{
	"keşfet",
	"duygular",
	"yalnızlık",
	"hayathalleri",
	"gece",
	"istanbul",
	"sözler",
	"ruh",
	"düşünce",
	"gecehali",
	"akşam",
	"melankoli",
	"hisler",
	"an",
	"yaşam",
	"hayat",
	"kalp",
	"gecepaylaşımları",
	"reels",
	"reel",
	"türkiye",
	"ankara",
	"izmir",
	"gecevakti",
	"sessizlik",
	"düşünceler",
	"paylaşım",
	"içsel",
	"geceklibi",
	"motivasyon",
	"söz",
	"alıntı",
	"etkileyici",
	"derin",
	"anlamlı",
}
